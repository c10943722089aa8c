package routes

import (
	"github.com/educat/tutor_marketplace/handlers"
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func LessonRoutes(api fiber.Router, h *handlers.Handler) {
	lessons := api.Group("/lessons", middleware.Protected(h.JWTSecret))
	lessons.Get("/:lessonId", h.GetLesson)
	lessons.Post("/:lessonId/cancel", h.CancelLesson)
	lessons.Post("/:lessonId/complete", middleware.TeacherRequired(), h.CompleteLesson)

	lessons.Get("/:lessonId/attachments", h.ListAttachments)
	lessons.Post("/:lessonId/attachments", h.UploadAttachment)

	lessons.Get("/:lessonId/reviews", h.ListLessonReviews)
	lessons.Post("/:lessonId/reviews", middleware.StudentRequired(), h.CreateReview)
}
