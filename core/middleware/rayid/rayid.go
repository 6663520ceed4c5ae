// Package rayid generates a unique request id (RayID) per incoming request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the generated request id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns every request a RayID, stored in
// the context locals and echoed in the response headers for tracing.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
