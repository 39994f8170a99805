package handler

import (
	"nerd-math/internal/middleware"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GamificationHandler serves the XP and level endpoints.
type GamificationHandler struct {
	service service.GamificationService
}

func NewGamificationHandler(service service.GamificationService) *GamificationHandler {
	return &GamificationHandler{service: service}
}

// GetState godoc
// @Summary Get gamification state
// @Description Returns the caller's level, XP within the level, lifetime XP and next threshold
// @Tags gamification
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.GamificationStateResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /gamification/state [get]
func (h *GamificationHandler) GetState(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	state, err := h.service.GetState(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// GetXPHistory godoc
// @Summary List XP transactions
// @Description Returns the caller's XP ledger, newest first
// @Tags gamification
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param reason query string false "Filter by reason"
// @Success 200 {object} dto.XPHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /gamification/xp-history [get]
func (h *GamificationHandler) GetXPHistory(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	page, _ := c.Locals(middleware.ValidatedPageKey).(int)
	limit, _ := c.Locals(middleware.ValidatedLimitKey).(int)
	reason, _ := c.Locals(middleware.ValidatedReasonKey).(string)

	history, err := h.service.GetXPHistory(c.UserContext(), userID, page, limit, reason)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetLevelHistory godoc
// @Summary List level-ups
// @Description Returns every level the caller reached, highest first
// @Tags gamification
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.LevelHistoryResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /gamification/level-history [get]
func (h *GamificationHandler) GetLevelHistory(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	history, err := h.service.GetLevelHistory(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// ListDefaultCharacters godoc
// @Summary List default characters
// @Description Returns the active default characters of one gender track, lowest level first
// @Tags characters
// @Security ApiKeyAuth
// @Produce json
// @Param gender query string true "Character track" Enums(male, female)
// @Success 200 {object} dto.DefaultCharactersResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /characters/default [get]
func (h *GamificationHandler) ListDefaultCharacters(c *fiber.Ctx) error {
	characters, err := h.service.ListDefaultCharacters(c.UserContext(), c.Query("gender"))
	if err != nil {
		return err
	}
	return c.JSON(characters)
}

// GetMyCharacter godoc
// @Summary Get equipped character
// @Description Returns the caller's gamification state and the equipped character, null when the tier has no catalog entry
// @Tags characters
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.MyCharacterResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /characters/my [get]
func (h *GamificationHandler) GetMyCharacter(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}
	mine, err := h.service.GetMyCharacter(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(mine)
}
