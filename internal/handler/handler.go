package handler

import (
	"strings"

	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// IdempotencyKeyHeader lets clients retry writes without applying them twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// idempotencyKey prefers the header over the body field.
func idempotencyKey(c *fiber.Ctx, bodyKey string) string {
	if key := strings.TrimSpace(c.Get(IdempotencyKeyHeader)); key != "" {
		return key
	}
	return strings.TrimSpace(bodyKey)
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("invalid request body").WithContext("error", err.Error())
	}
	return nil
}

func validate(errs domain.ValidationErrors) error {
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toUserAnswer(p dto.UserAnswerPayload) domain.UserAnswer {
	return domain.UserAnswer{Value: p.Value, SelectedOption: p.SelectedOption}
}

func toUnitProgressResponse(row *domain.UnitProgress) *dto.UnitProgressResponse {
	if row == nil {
		return nil
	}
	return &dto.UnitProgressResponse{
		UnitID:          row.UnitID,
		Category:        string(row.Category),
		ConceptProgress: row.ConceptProgress,
		ProblemProgress: row.ProblemProgress,
		VocabProgress:   row.VocabProgress,
	}
}

var sharedValidator = validation.NewValidator()
