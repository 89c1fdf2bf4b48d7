package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

type UserHandler struct {
	authService *service.AuthService
	userRepo    *repository.UserRepository
	validator   *utils.Validator
}

func NewUserHandler(authService *service.AuthService, userRepo *repository.UserRepository, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		authService: authService,
		userRepo:    userRepo,
		validator:   validator,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByEmail(currentEmail(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(models.NewUserResponse(*user), "Profile retrieved successfully"))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.authService.UpdateProfile(currentEmail(c), req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(models.NewUserResponse(*user), "Profile updated successfully"))
}
