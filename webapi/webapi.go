// Package webapi provides the HTTP boundary of the commission service. It is
// organized into sub-packages per domain:
// - transaction: approval and audit trail endpoints
// - payout: scheduling, settlement, and query endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/commission/pkg/app"
	"github.com/amirasaad/commission/webapi/common"
	payoutweb "github.com/amirasaad/commission/webapi/payout"
	transactionweb "github.com/amirasaad/commission/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with middleware and all routes.
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	// Rate limiting keyed on the originating client IP.
	// Uses X-Forwarded-For when behind a proxy, falling back to X-Real-IP
	// and the direct peer address.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Commission API is running")
	})

	transactionweb.Routes(fiberApp, a.PayoutService, a.AuditRecorder)
	payoutweb.Routes(fiberApp, a.PayoutService)

	return fiberApp
}
