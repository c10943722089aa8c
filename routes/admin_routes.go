package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(api fiber.Router, h *handlers.Handler) {
	admin := api.Group("/admin", middleware.Protected(h.JWTSecret), middleware.AdminRequired())

	admin.Post("/lessons/sweep", h.SweepLessons)
	admin.Post("/ratings/recompute", h.RecomputeRatings)

	admin.Get("/subjects", h.ListSubjects)
	admin.Post("/subjects", h.CreateSubject)
	admin.Post("/preparation-programs", h.CreatePreparationProgram)
}
