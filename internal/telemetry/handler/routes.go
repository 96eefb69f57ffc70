package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *DeviceHandler) {
	app.Post("/dados", h.Ingest)
	app.Get("/dados/:deviceId", h.GetData)
	app.Delete("/dados/:deviceId", h.DeleteData)
	app.Get("/dispositivos", h.ListDevices)

	app.Get("/api/devices/:deviceId/latest", h.Latest)
}
