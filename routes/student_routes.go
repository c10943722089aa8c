package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(api fiber.Router, h *handlers.Handler) {
	student := api.Group("/student", middleware.Protected(h.JWTSecret), middleware.StudentRequired())

	student.Get("/lessons", h.ListStudentLessons)
	student.Get("/teachers", h.ListMyTeachers)
	student.Post("/requests", h.SendConnectionRequest)
	student.Get("/requests", h.ListMyRequests)
	student.Get("/reviews", h.ListMyReviews)
	student.Get("/statistics", h.GetStudentStatistics)
}
