package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.authService.Register(req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(models.NewUserResponse(*user), "Account created successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(models.AuthResponse{
		User: models.NewUserResponse(*user),
	}, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out successfully"))
}
