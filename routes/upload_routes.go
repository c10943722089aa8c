package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(api fiber.Router, h *handlers.Handler) {
	uploads := api.Group("/uploads", middleware.Protected(h.JWTSecret))
	uploads.Get("/signature", h.GenerateUploadSignature)
}
