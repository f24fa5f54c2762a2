package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseDeny renders an authorization decision: 401 for unauthenticated
// callers (UI redirects to login), 403 otherwise (UI shows forbidden).
func ResponseDeny(ctx *fiber.Ctx, reason string) error {
	status := fiber.StatusForbidden
	if reason == "not_authenticated" {
		status = fiber.StatusUnauthorized
	}
	return ctx.Status(status).JSON(fiber.Map{
		"error":  "access denied",
		"reason": reason,
	})
}
