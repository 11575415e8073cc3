package middleware

import (
	"strings"

	"devconnector/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	HeaderAuthToken = "x-auth-token"
	CtxUserIDKey    = "user_id"
)

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(HeaderAuthToken))
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, msgNoToken, nil, nil)
		}

		userID, err := m.jwt.Verify(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, msgInvalidToken, nil, err)
		}

		c.Locals(CtxUserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identity the auth middleware resolved for c.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
