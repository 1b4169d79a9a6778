package auth

import (
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// UnifiedAuthMiddleware authenticates requests with an API key header
type UnifiedAuthMiddleware struct {
	cfg Config
}

func NewAPIKeyMiddleware(cfg Config) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{cfg: cfg}
}

// Authenticate returns a handler that resolves the caller from X-API-Key
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			return ErrMissingAPIKey()
		}

		authCtx, ok := m.cfg.Keys[key]
		if !ok {
			return ErrInvalidAPIKey()
		}

		c.Locals(authContextKey, authCtx)
		return c.Next()
	}
}

// GetAuthContext retrieves the AuthContext set by Authenticate
func GetAuthContext(c *fiber.Ctx) (AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(AuthContext)
	return authCtx, ok
}
