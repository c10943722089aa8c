package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(api fiber.Router, h *handlers.Handler) {
	profile := api.Group("/profile", middleware.Protected(h.JWTSecret))
	profile.Get("/me", h.GetProfile)
}
