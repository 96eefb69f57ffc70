package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AlertHandler) {
	app.Post("/api/alerts", h.Trigger)

	ts := app.Group("/api/thingspeak")
	ts.Get("/", h.FeedData)
	ts.Get("/fetch", h.RunFetch)
	ts.Get("/alerts", h.ListAlerts)
}
