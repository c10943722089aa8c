package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(api fiber.Router, h *handlers.Handler) {
	api.Get("/subjects", h.ListSubjects)
	api.Get("/preparation-programs", h.ListPreparationPrograms)
	api.Get("/teachers", h.SearchTeachers)
	api.Get("/teachers/:teacherId/reviews", h.ListTeacherReviews)
	api.Get("/teachers/:teacherId/statistics", h.GetTeacherStatistics)
}
