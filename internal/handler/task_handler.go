package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

type TaskHandler struct {
	taskService *service.TaskService
	validator   *utils.Validator
}

func NewTaskHandler(taskService *service.TaskService, validator *utils.Validator) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator,
	}
}

func (h *TaskHandler) AddTask(c *fiber.Ctx) error {
	var req models.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	task, err := h.taskService.AddTask(c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(task, "Task added successfully"))
}

func (h *TaskHandler) EditTask(c *fiber.Ctx) error {
	var req models.EditTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	g, err := h.taskService.EditTask(c.Params("id"), c.Params("taskId"), req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(g, "Task updated successfully"))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	g, err := h.taskService.ToggleStatus(c.Params("id"), c.Params("taskId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(g, "Task status toggled"))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	g, err := h.taskService.DeleteTask(c.Params("id"), c.Params("taskId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(g, "Task deleted successfully"))
}
