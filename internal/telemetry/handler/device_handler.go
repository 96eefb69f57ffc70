package handler

import (
	"errors"

	apperrors "github.com/FJR5209/Dashboard-backend/internal/errors"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/dto"
	"github.com/FJR5209/Dashboard-backend/internal/telemetry/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DeviceHandler struct {
	deviceService *service.DeviceService
	logger        *zap.Logger
}

func NewDeviceHandler(deviceService *service.DeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{
		deviceService: deviceService,
		logger:        logger,
	}
}

// Ingest accepts a device's periodic reading: 201 when the device is new,
// 200 when an existing record was overwritten.
func (h *DeviceHandler) Ingest(c *fiber.Ctx) error {
	var input dto.ReadingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	device, created, err := h.deviceService.Ingest(c.Context(), input)
	if err != nil {
		return h.respondError(c, err)
	}

	status := fiber.StatusOK
	message := "device data updated"
	if created {
		status = fiber.StatusCreated
		message = "device registered"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"device":  dto.NewDeviceOutput(device),
	})
}

func (h *DeviceHandler) GetData(c *fiber.Ctx) error {
	device, err := h.deviceService.Get(c.Context(), c.Params("deviceId"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewDeviceOutput(device))
}

// Latest mirrors GetData on the device-facing route group.
func (h *DeviceHandler) Latest(c *fiber.Ctx) error {
	return h.GetData(c)
}

func (h *DeviceHandler) DeleteData(c *fiber.Ctx) error {
	deleted, err := h.deviceService.Purge(c.Context(), c.Params("deviceId"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "device data deleted",
		"deletedCount": deleted,
	})
}

func (h *DeviceHandler) ListDevices(c *fiber.Ctx) error {
	devices, err := h.deviceService.List(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}

	out := make([]dto.DeviceOutput, 0, len(devices))
	for i := range devices {
		out = append(out, dto.NewDeviceOutput(&devices[i]))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *DeviceHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDeviceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		h.logger.Error("device request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
