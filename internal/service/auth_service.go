package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nerd-math/internal/config"
	"nerd-math/internal/dto"
	"nerd-math/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrWrongTokenType  = errors.New("token is not an access token")
)

// AuthService verifies the bearer tokens issued by the identity service.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID int64, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	cfg config.JWTConfig
	now func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{cfg: cfg, now: time.Now}, nil
}

// CreateJWT signs a token for userID. Tokens are normally minted by the identity
// service; this is used by tooling and tests.
func (s *authServiceImpl) CreateJWT(ctx context.Context, userID int64, ttl time.Duration, tokenType string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func tokenSnippet(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", tokenSnippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrWrongTokenType
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidJWTToken)
	}
	return claims, nil
}
