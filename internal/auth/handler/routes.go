package handler

import (
	"github.com/FJR5209/Dashboard-backend/internal/auth/domain"
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/api/auth")

	auth.Post("/login", h.Login)

	auth.Post("/users/cadastro", h.RequireAuth(), h.RequireRole(domain.RoleAdmin), h.Register)
	auth.Get("/users/me", h.RequireAuth(), h.Me)
	auth.Get("/users", h.RequireAuth(), h.RequireRole(domain.RoleAdmin), h.GetAllUsers)
	auth.Get("/users/:id", h.RequireAuth(), h.RequireSelfOrRole(domain.RoleAdmin), h.GetUser)
	auth.Put("/users/:id", h.RequireAuth(), h.RequireSelfOrRole(domain.RoleAdmin), h.UpdateUser)
	auth.Delete("/users/:id", h.RequireAuth(), h.RequireRole(domain.RoleAdmin), h.DeleteUser)
}
