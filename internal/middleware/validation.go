package middleware

import (
	"strconv"

	"nerd-math/internal/domain"
	"nerd-math/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidationMiddleware.
const (
	ValidatedPageKey   = "validated_page"
	ValidatedLimitKey  = "validated_limit"
	ValidatedReasonKey = "validated_reason"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateTestID rejects malformed :testId path parameters.
func (vm *ValidationMiddleware) ValidateTestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateTestID(c.Params("testId")); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidateUnitID rejects malformed :unitId path parameters.
func (vm *ValidationMiddleware) ValidateUnitID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := vm.validator.ValidateUnitID(c.Params("unitId")); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}

// ValidateHistoryQuery parses page, limit and reason and stores them in locals.
func (vm *ValidationMiddleware) ValidateHistoryQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, pageErr := parsePositive(c.Query("page"), defaultPage)
		limit, limitErr := parsePositive(c.Query("limit"), defaultLimit)

		var errs domain.ValidationErrors
		if pageErr != nil {
			errs = append(errs, domain.NewInvalidFormatError("page", c.Query("page")))
		}
		if limitErr != nil {
			errs = append(errs, domain.NewInvalidFormatError("limit", c.Query("limit")))
		}
		if len(errs) > 0 {
			return errs
		}

		reason := c.Query("reason")
		if errs := vm.validator.ValidateHistoryQuery(page, limit, reason); len(errs) > 0 {
			return errs
		}

		c.Locals(ValidatedPageKey, page)
		c.Locals(ValidatedLimitKey, limit)
		c.Locals(ValidatedReasonKey, reason)
		return c.Next()
	}
}

func parsePositive(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
