package middleware

import (
	"strings"

	"francheasy/internal/delivery/http/response"
	"francheasy/internal/domain/repository"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer access token, resolves the subject to a
// stored user and puts the user id on the context. Every failure collapses
// to a plain 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return m.unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return m.unauthorized(c, "Invalid or expired token")
		}

		if _, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return m.unauthorized(c, "Invalid or expired token")
			}

			return err
		}

		c.Set(userIDKey, claims.UserID)

		return next(c)
	}
}

func (m *AuthMiddleware) unauthorized(c echo.Context, message string) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")

	return response.Unauthorized(c, "UNAUTHENTICATED", message)
}

// UserID returns the authenticated user id set by Authenticate.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(userIDKey).(uuid.UUID)

	return userID, ok
}
