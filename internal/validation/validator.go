package validation

import (
	"regexp"
	"strings"

	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
)

const (
	maxAnswerLength = 2000
	maxIdentifier   = 64
	maxGrade        = 12
	maxHistoryLimit = 100
)

var (
	ulidPattern       = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCheckAnswerRequest checks that the fields required by the answer mode are present.
func (v *Validator) ValidateCheckAnswerRequest(req *dto.CheckAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	switch domain.AttemptMode(req.Mode) {
	case domain.ModePractice:
		errors = append(errors, v.validateIdentifier("problemId", req.ProblemID)...)
		if req.SetID != "" {
			errors = append(errors, v.validateIdentifier("setId", req.SetID)...)
		}
	case domain.ModeVocabTest:
		errors = append(errors, v.validateIdentifier("vocabId", req.VocabID)...)
		if req.Direction != "" && !domain.VocabDirection(req.Direction).Valid() {
			errors = append(errors, domain.NewInvalidChoiceError("direction", req.Direction,
				string(domain.WordToMeaning), string(domain.MeaningToWord)))
		}
	case "":
		errors = append(errors, domain.NewMissingFieldError("mode"))
	default:
		errors = append(errors, domain.NewInvalidChoiceError("mode", req.Mode,
			string(domain.ModePractice), string(domain.ModeVocabTest)))
	}

	errors = append(errors, v.validateAnswer("userAnswer", req.UserAnswer)...)
	errors = append(errors, v.validateDuration(req.DurationSeconds)...)
	return errors
}

// ValidateUpdateProgressRequest validates a manual progress update.
func (v *Validator) ValidateUpdateProgressRequest(req *dto.UpdateProgressRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if !domain.ProgressAxis(req.Axis).Valid() {
		errors = append(errors, domain.NewInvalidChoiceError("axis", req.Axis,
			string(domain.AxisConcept), string(domain.AxisProblem), string(domain.AxisVocab)))
	}
	if req.Value == nil {
		errors = append(errors, domain.NewMissingFieldError("value"))
	}

	category := domain.ProgressCategory(req.Category)
	switch {
	case req.Category == "" || category == domain.CategoryUnit:
		errors = append(errors, v.validateIdentifier("unitId", req.UnitID)...)
	case category == domain.CategoryFrequent:
	default:
		errors = append(errors, domain.NewInvalidChoiceError("category", req.Category,
			string(domain.CategoryUnit), string(domain.CategoryFrequent)))
	}
	return errors
}

// ValidateStartDiagnosticRequest validates the requested grade range.
func (v *Validator) ValidateStartDiagnosticRequest(req *dto.StartDiagnosticRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if req.GradeRange.Min < 1 || req.GradeRange.Min > maxGrade {
		errors = append(errors, domain.NewOutOfRangeError("gradeRange.min", req.GradeRange.Min, 1, maxGrade))
	}
	if req.GradeRange.Max < 1 || req.GradeRange.Max > maxGrade {
		errors = append(errors, domain.NewOutOfRangeError("gradeRange.max", req.GradeRange.Max, 1, maxGrade))
	}
	if len(errors) == 0 && req.GradeRange.Max < req.GradeRange.Min {
		errors = append(errors, domain.ValidationError{
			Field:   "gradeRange",
			Message: "max must not be lower than min",
			Value:   req.GradeRange,
		})
	}
	return errors
}

// ValidateSubmitAnswerRequest validates one diagnostic answer.
func (v *Validator) ValidateSubmitAnswerRequest(req *dto.SubmitAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, v.validateIdentifier("problemId", req.ProblemID)...)
	errors = append(errors, v.validateAnswer("userAnswer", req.UserAnswer)...)
	errors = append(errors, v.validateDuration(req.DurationSeconds)...)
	return errors
}

// ValidateIngestAnalysisRequest validates an analysis callback payload.
func (v *Validator) ValidateIngestAnalysisRequest(req *dto.IngestAnalysisRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	errors = append(errors, v.ValidateTestID(req.TestID)...)
	if req.UserID < 0 {
		errors = append(errors, domain.NewInvalidFormatError("userId", req.UserID))
	}
	for _, step := range req.RecommendedPath {
		if strings.TrimSpace(step.UnitID) == "" {
			errors = append(errors, domain.NewMissingFieldError("recommendedPath.unitId"))
			break
		}
	}
	return errors
}

// ValidateTestID checks that id looks like a diagnostic test id.
func (v *Validator) ValidateTestID(id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("testId")}
	}
	if !ulidPattern.MatchString(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("testId", id)}
	}
	return nil
}

// ValidateUnitID checks a catalog unit id.
func (v *Validator) ValidateUnitID(id string) domain.ValidationErrors {
	return v.validateIdentifier("unitId", id)
}

// ValidateHistoryQuery validates xp history paging.
func (v *Validator) ValidateHistoryQuery(page, limit int, reason string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if page < 1 {
		errors = append(errors, domain.NewOutOfRangeError("page", page, 1, int(^uint32(0)>>1)))
	}
	if limit < 1 || limit > maxHistoryLimit {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 1, maxHistoryLimit))
	}
	if reason != "" && !domain.XPReason(reason).Valid() {
		errors = append(errors, domain.NewInvalidFormatError("reason", reason))
	}
	return errors
}

func (v *Validator) validateIdentifier(field, id string) domain.ValidationErrors {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if len(id) > maxIdentifier || !identifierPattern.MatchString(id) {
		return domain.ValidationErrors{domain.NewInvalidFormatError(field, id)}
	}
	return nil
}

func (v *Validator) validateAnswer(field string, answer dto.UserAnswerPayload) domain.ValidationErrors {
	if answer.SelectedOption != nil {
		if *answer.SelectedOption < 0 {
			return domain.ValidationErrors{domain.NewInvalidFormatError(field+".selectedOption", *answer.SelectedOption)}
		}
		return nil
	}
	if strings.TrimSpace(answer.Value) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if len(answer.Value) > maxAnswerLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field+".value", len(answer.Value), 1, maxAnswerLength)}
	}
	return nil
}

func (v *Validator) validateDuration(seconds *int) domain.ValidationErrors {
	if seconds != nil && *seconds < 0 {
		return domain.ValidationErrors{domain.NewInvalidFormatError("durationSeconds", *seconds)}
	}
	return nil
}
