package handler

import (
	"nerd-math/internal/domain"
	"nerd-math/internal/middleware"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Gamification *GamificationHandler
	Progress     *ProgressHandler
	Answers      *AnswerHandler
	Diagnostics  *DiagnosticHandler
	Health       *HealthHandler
}

// RegisterRoutes mounts the API under /api/v1. Every route except health and
// the analysis callback requires a bearer token.
func RegisterRoutes(app *fiber.App, h Handlers, authService service.AuthService, serviceToken string) {
	validator := middleware.NewValidationMiddleware()
	protected := middleware.Protected(authService)

	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	api := app.Group("/api/v1")

	gamification := api.Group("/gamification", protected)
	gamification.Get("/state", h.Gamification.GetState)
	gamification.Get("/xp-history", validator.ValidateHistoryQuery(), h.Gamification.GetXPHistory)
	gamification.Get("/level-history", h.Gamification.GetLevelHistory)

	characters := api.Group("/characters", protected)
	characters.Get("/default", h.Gamification.ListDefaultCharacters)
	characters.Get("/my", h.Gamification.GetMyCharacter)

	progress := api.Group("/progress", protected)
	progress.Get("/overall", h.Progress.GetOverall)
	progress.Get("/concepts", h.Progress.ListAxis(domain.AxisConcept))
	progress.Get("/problems", h.Progress.ListAxis(domain.AxisProblem))
	progress.Get("/vocab", h.Progress.ListAxis(domain.AxisVocab))
	progress.Post("/update", h.Progress.UpdateProgress)

	api.Post("/answers/check", protected, h.Answers.CheckAnswer)
	api.Post("/units/:unitId/concept/complete", protected, validator.ValidateUnitID(), h.Answers.CompleteConcept)

	api.Post("/internal/diagnostics/analysis", middleware.ServiceToken(serviceToken), h.Diagnostics.IngestAnalysis)

	diagnostics := api.Group("/diagnostics", protected)
	diagnostics.Get("/eligibility", h.Diagnostics.Eligibility)
	diagnostics.Post("/start", h.Diagnostics.Start)
	diagnostics.Get("/analysis/latest", h.Diagnostics.LatestAnalysis)

	// Static diagnostic routes must be registered before the :testId group.
	byTest := diagnostics.Group("/:testId", validator.ValidateTestID())
	byTest.Get("/status", h.Diagnostics.Status)
	byTest.Post("/submit", h.Diagnostics.Submit)
	byTest.Post("/complete", h.Diagnostics.Complete)
	byTest.Get("/analysis", h.Diagnostics.Analysis)
	byTest.Post("/restart", h.Diagnostics.Restart)
	byTest.Get("/timeout-check", h.Diagnostics.TimeoutCheck)
}
