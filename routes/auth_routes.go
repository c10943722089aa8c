package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, h *handlers.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.RegisterUser)
	auth.Post("/login", h.LoginUser)
}
