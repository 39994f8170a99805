package handler

import (
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/middleware"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DiagnosticHandler serves the diagnostic test lifecycle and the analysis callback.
type DiagnosticHandler struct {
	service service.DiagnosticService
}

func NewDiagnosticHandler(service service.DiagnosticService) *DiagnosticHandler {
	return &DiagnosticHandler{service: service}
}

// Eligibility godoc
// @Summary Check diagnostic eligibility
// @Description A user may take the diagnostic test once; after completion the answer is 403 with the same body
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.EligibilityResponse
// @Failure 403 {object} dto.EligibilityResponse
// @Router /diagnostics/eligibility [get]
func (h *DiagnosticHandler) Eligibility(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Eligibility(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if !resp.Eligible {
		return c.Status(fiber.StatusForbidden).JSON(resp)
	}
	return c.JSON(resp)
}

// Start godoc
// @Summary Start a diagnostic test
// @Description Opens a timed session. An open session is restarted instead.
// @Tags diagnostics
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.StartDiagnosticRequest true "Grade range"
// @Success 201 {object} dto.StartDiagnosticResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /diagnostics/start [post]
func (h *DiagnosticHandler) Start(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.StartDiagnosticRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(sharedValidator.ValidateStartDiagnosticRequest(&req)); err != nil {
		return err
	}

	resp, err := h.service.Start(c.UserContext(), userID, service.StartDiagnosticInput{
		GradeRange: domain.GradeRange{Min: req.GradeRange.Min, Max: req.GradeRange.Max},
		Rule:       req.Rule,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Status godoc
// @Summary Poll a diagnostic test
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.DiagnosticStatusResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /diagnostics/{testId}/status [get]
func (h *DiagnosticHandler) Status(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Status(c.UserContext(), userID, c.Params("testId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit godoc
// @Summary Submit one diagnostic answer
// @Description Answers are stored unscored until the test is completed
// @Tags diagnostics
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param testId path string true "Test ID"
// @Param Idempotency-Key header string false "Retry key"
// @Param request body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 408 {object} middleware.ErrorResponse "Test timed out"
// @Failure 409 {object} middleware.ErrorResponse
// @Router /diagnostics/{testId}/submit [post]
func (h *DiagnosticHandler) Submit(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.SubmitAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(sharedValidator.ValidateSubmitAnswerRequest(&req)); err != nil {
		return err
	}

	resp, err := h.service.Submit(c.UserContext(), userID, c.Params("testId"), service.SubmitDiagnosticInput{
		ProblemID:       req.ProblemID,
		Answer:          toUserAnswer(req.UserAnswer),
		DurationSeconds: req.DurationSeconds,
	}, idempotencyKey(c, req.IdempotencyKey))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Complete godoc
// @Summary Complete a diagnostic test
// @Description Scores every answer and hands the transcript to the analysis service
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.CompleteDiagnosticResponse
// @Failure 408 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /diagnostics/{testId}/complete [post]
func (h *DiagnosticHandler) Complete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Complete(c.UserContext(), userID, c.Params("testId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart godoc
// @Summary Restart an open diagnostic test
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.RestartDiagnosticResponse
// @Failure 403 {object} middleware.ErrorResponse "Restart limit reached"
// @Failure 409 {object} middleware.ErrorResponse
// @Router /diagnostics/{testId}/restart [post]
func (h *DiagnosticHandler) Restart(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Restart(c.UserContext(), userID, c.Params("testId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// TimeoutCheck godoc
// @Summary Check the remaining time of a diagnostic test
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.TimeoutStatusResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /diagnostics/{testId}/timeout-check [get]
func (h *DiagnosticHandler) TimeoutCheck(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.TimeoutStatus(c.UserContext(), userID, c.Params("testId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Analysis godoc
// @Summary Get the analysis of a diagnostic test
// @Description 202 while the analysis service is still working
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {object} dto.AnalysisResponse
// @Success 202 {object} dto.AnalysisResponse
// @Router /diagnostics/{testId}/analysis [get]
func (h *DiagnosticHandler) Analysis(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.Analysis(c.UserContext(), userID, c.Params("testId"))
	if err != nil {
		return err
	}
	return analysisJSON(c, resp)
}

// LatestAnalysis godoc
// @Summary Get the analysis of the caller's completed diagnostic test
// @Tags diagnostics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AnalysisResponse
// @Success 202 {object} dto.AnalysisResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /diagnostics/analysis/latest [get]
func (h *DiagnosticHandler) LatestAnalysis(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.LatestAnalysis(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return analysisJSON(c, resp)
}

// IngestAnalysis godoc
// @Summary Store an analysis result
// @Description Callback used by the analysis service
// @Tags internal
// @Accept json
// @Param X-Service-Token header string true "Shared service token"
// @Param request body dto.IngestAnalysisRequest true "Analysis"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /internal/diagnostics/analysis [post]
func (h *DiagnosticHandler) IngestAnalysis(c *fiber.Ctx) error {
	var req dto.IngestAnalysisRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(sharedValidator.ValidateIngestAnalysisRequest(&req)); err != nil {
		return err
	}

	analysis := &domain.DiagnosticAnalysis{
		TestID:    req.TestID,
		UserID:    req.UserID,
		AIComment: req.AIComment,
		Class:     req.Class,
	}
	for _, step := range req.RecommendedPath {
		analysis.RecommendedPath = append(analysis.RecommendedPath, domain.RecommendedUnit{
			UnitID:    step.UnitID,
			UnitTitle: step.UnitTitle,
			Priority:  step.Priority,
			Reason:    step.Reason,
		})
	}
	if req.GeneratedAt != nil {
		analysis.GeneratedAt = *req.GeneratedAt
	}

	if err := h.service.IngestAnalysis(c.UserContext(), analysis); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func analysisJSON(c *fiber.Ctx, resp *dto.AnalysisResponse) error {
	if resp.Status == dto.AnalysisStatusAnalyzing {
		return c.Status(fiber.StatusAccepted).JSON(resp)
	}
	return c.JSON(resp)
}
