package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/pkg/qrcode"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

type GatheringHandler struct {
	gatheringService *service.GatheringService
	qrService        *qrcode.QRService
	validator        *utils.Validator
	baseURL          string
}

func NewGatheringHandler(gatheringService *service.GatheringService, qrService *qrcode.QRService, validator *utils.Validator, baseURL string) *GatheringHandler {
	return &GatheringHandler{
		gatheringService: gatheringService,
		qrService:        qrService,
		validator:        validator,
		baseURL:          baseURL,
	}
}

func (h *GatheringHandler) respond(g models.Gathering) models.GatheringResponse {
	return models.NewGatheringResponse(g, h.baseURL)
}

func (h *GatheringHandler) CreateGathering(c *fiber.Ctx) error {
	var req models.GatheringRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	g, err := h.gatheringService.Create(currentEmail(c), req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(h.respond(*g), "Gathering created successfully"))
}

// ListGatherings also serves the join-by-link flow: a ?joincode= parameter
// joins the logged-in user first, then redirects to the plain list URL so a
// reload does not carry the parameter again.
func (h *GatheringHandler) ListGatherings(c *fiber.Ctx) error {
	if joinCode := strings.ToUpper(strings.TrimSpace(c.Query("joincode"))); joinCode != "" {
		if _, err := h.gatheringService.JoinByCode(joinCode, currentEmail(c)); err != nil {
			return fail(c, err)
		}
		return c.Redirect("/api/gatherings", fiber.StatusSeeOther)
	}

	filter := models.GatheringFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid from date"))
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid to date"))
		}
		filter.To = &t
	}

	gatherings, err := h.gatheringService.List(filter)
	if err != nil {
		return fail(c, err)
	}

	responses := make([]models.GatheringResponse, 0, len(gatherings))
	for _, g := range gatherings {
		responses = append(responses, h.respond(g))
	}
	return c.JSON(models.SuccessResponse(responses, "Gatherings retrieved successfully"))
}

func (h *GatheringHandler) GetGathering(c *fiber.Ctx) error {
	g, err := h.gatheringService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(h.respond(*g), "Gathering retrieved successfully"))
}

func (h *GatheringHandler) GetGatheringByCode(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	g, err := h.gatheringService.GetByCode(code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(h.respond(*g), "Gathering retrieved successfully"))
}

func (h *GatheringHandler) UpdateGathering(c *fiber.Ctx) error {
	var req models.UpdateGatheringRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	g, err := h.gatheringService.Update(c.Params("id"), req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(h.respond(*g), "Gathering updated successfully"))
}

func (h *GatheringHandler) DeleteGathering(c *fiber.Ctx) error {
	if err := h.gatheringService.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Gathering deleted successfully"))
}

func (h *GatheringHandler) JoinGathering(c *fiber.Ctx) error {
	g, err := h.gatheringService.Join(c.Params("id"), currentEmail(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(h.respond(*g), "Joined gathering"))
}

func (h *GatheringHandler) JoinByCode(c *fiber.Ctx) error {
	var req models.JoinByCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Join code is required"))
	}

	g, err := h.gatheringService.JoinByCode(code, currentEmail(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(h.respond(*g), "Joined gathering"))
}

func (h *GatheringHandler) LeaveGathering(c *fiber.Ctx) error {
	g, err := h.gatheringService.Leave(c.Params("id"), currentEmail(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(h.respond(*g), "Left gathering"))
}

// GetQRCode renders the gathering's shareable link as a PNG QR code.
func (h *GatheringHandler) GetQRCode(c *fiber.Ctx) error {
	g, err := h.gatheringService.Get(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}

	png, err := h.qrService.GenerateQRCode(g.Code, 256)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
