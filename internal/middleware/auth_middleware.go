package middleware

import (
	"crypto/subtle"
	"strings"

	"nerd-math/internal/domain"
	"nerd-math/internal/logger"
	"nerd-math/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals

	// ServiceTokenHeader authenticates calls from the analysis service.
	ServiceTokenHeader = "X-Service-Token"
)

// Protected requires a valid access token and stores the user id in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("authorization scheme is not Bearer")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("token is empty")
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation failed", zap.String("path", c.Path()), zap.Error(err))
			return domain.NewUnauthorizedError("invalid or expired token")
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the id stored by Protected.
func UserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals(UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, domain.NewUnauthorizedError("user id not found in context")
	}
	return userID, nil
}

// ServiceToken guards service-to-service routes with a shared secret. An
// empty configured token rejects every call.
func ServiceToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get(ServiceTokenHeader)
		if token == "" || got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			logger.Get().Warn("Rejected service call", zap.String("path", c.Path()), zap.String("ip", c.IP()))
			return domain.NewUnauthorizedError("invalid service token")
		}
		return c.Next()
	}
}
