// Package auth implements API key validation to protect endpoints.
package auth

import "github.com/gofiber/fiber/v2"

// HeaderName is the request header carrying the API key.
const HeaderName = "X-Api-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
}

// New returns a middleware rejecting requests without the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get(HeaderName) != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}
		return c.Next()
	}
}
