package handler

import (
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"
	"nerd-math/internal/middleware"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnswerHandler serves practice and vocabulary answer checking.
type AnswerHandler struct {
	service service.AnswerService
}

func NewAnswerHandler(service service.AnswerService) *AnswerHandler {
	return &AnswerHandler{service: service}
}

// CheckAnswer godoc
// @Summary Check a practice or vocabulary answer
// @Description Scores the answer, updates unit progress and awards XP for first correct answers
// @Tags answers
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Retry key"
// @Param request body dto.CheckAnswerRequest true "Answer"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Idempotency key already used"
// @Router /answers/check [post]
func (h *AnswerHandler) CheckAnswer(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.CheckAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(sharedValidator.ValidateCheckAnswerRequest(&req)); err != nil {
		return err
	}

	resp, err := h.service.CheckAnswer(c.UserContext(), userID, service.CheckAnswerInput{
		Mode:            domain.AttemptMode(req.Mode),
		ProblemID:       req.ProblemID,
		VocabID:         req.VocabID,
		SetID:           req.SetID,
		Direction:       domain.VocabDirection(req.Direction),
		Answer:          toUserAnswer(req.UserAnswer),
		DurationSeconds: req.DurationSeconds,
	}, idempotencyKey(c, req.IdempotencyKey))
	if err != nil {
		return err
	}

	logger.Get().Debug("Answer checked",
		zap.Int64("userID", userID), zap.String("answerID", resp.AnswerID), zap.Bool("correct", resp.IsCorrect))
	return c.JSON(resp)
}

// CompleteConcept godoc
// @Summary Mark a unit's concept lesson complete
// @Tags answers
// @Security ApiKeyAuth
// @Produce json
// @Param unitId path string true "Unit ID"
// @Param Idempotency-Key header string false "Retry key"
// @Success 200 {object} dto.ConceptCompleteResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /units/{unitId}/concept/complete [post]
func (h *AnswerHandler) CompleteConcept(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	resp, err := h.service.CompleteConcept(c.UserContext(), userID, c.Params("unitId"), idempotencyKey(c, ""))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
