package middleware

import (
	"strings"

	"github.com/campusgate/admission_service/internal/helper"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the JWT into claims and stashes them in the
// request context. Authorization (role × action × target) is decided later
// by the access service; this layer only answers "who is calling".
func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", user.UserID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}
