package handlers

import (
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/helper"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/campusgate/admission_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	users repository.UserRepository
	auth  helper.Auth
}

func NewAuthHandler(users repository.UserRepository, auth helper.Auth) *AuthHandler {
	return &AuthHandler{users: users, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/auth/login", h.Login)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}
	if requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.users.FindUserByEmail(requestBody.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid email or password")
	}
	if err := h.auth.VerifyPassword(requestBody.Password, user.PasswordHash); err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.auth.GenerateToken(user)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token":      token,
		"role":       user.Role,
		"branch_id":  user.BranchID,
		"student_id": user.StudentID,
	})
}
