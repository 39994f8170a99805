package handler

import (
	"nerd-math/internal/domain"
	"nerd-math/internal/dto"
	"nerd-math/internal/middleware"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler serves the unit progress endpoints.
type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// GetOverall godoc
// @Summary Get overall progress
// @Description Averages of every axis over the catalog plus the fully completed unit ratio
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} domain.OverallProgress
// @Failure 401 {object} middleware.ErrorResponse
// @Router /progress/overall [get]
func (h *ProgressHandler) GetOverall(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	overall, err := h.service.Overall(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(overall)
}

// ListAxis returns a handler listing one progress axis for every active unit.
// @Summary List progress of one axis
// @Tags progress
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AxisProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /progress/concepts [get]
// @Router /progress/problems [get]
// @Router /progress/vocab [get]
func (h *ProgressHandler) ListAxis(axis domain.ProgressAxis) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return err
		}
		resp, err := h.service.ListAxis(c.UserContext(), userID, axis)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// UpdateProgress godoc
// @Summary Set one progress axis
// @Description Values are clamped to 0..100
// @Tags progress
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProgressRequest true "Progress update"
// @Success 200 {object} dto.UnitProgressResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /progress/update [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProgressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validate(sharedValidator.ValidateUpdateProgressRequest(&req)); err != nil {
		return err
	}

	row, err := h.service.UpdateProgress(c.UserContext(), userID, service.UpdateProgressInput{
		UnitID:   req.UnitID,
		Axis:     domain.ProgressAxis(req.Axis),
		Value:    *req.Value,
		Category: domain.ProgressCategory(req.Category),
	})
	if err != nil {
		return err
	}
	return c.JSON(toUnitProgressResponse(row))
}
