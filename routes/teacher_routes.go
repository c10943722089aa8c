package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TeacherRoutes(api fiber.Router, h *handlers.Handler) {
	teacher := api.Group("/teacher", middleware.Protected(h.JWTSecret), middleware.TeacherRequired())

	teacher.Get("/lessons", h.ListTeacherLessons)
	teacher.Post("/lessons", h.CreateLesson)

	requests := teacher.Group("/requests")
	requests.Get("", h.ListPendingRequests)
	requests.Post("/:requestId/accept", h.AcceptRequest)
	requests.Post("/:requestId/reject", h.RejectRequest)

	teacher.Get("/students", h.ListMyStudents)
	teacher.Delete("/students/:studentId", h.RemoveStudent)

	teacher.Put("/profile", h.UpdateTeacherProfile)
	teacher.Get("/reviews", h.ListMyReviews)
	teacher.Get("/statistics", h.GetMyStatistics)
}
