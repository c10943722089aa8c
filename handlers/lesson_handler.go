package handlers

import (
	"github.com/educat/tutor_marketplace/middleware"
	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateLessonRequest struct {
	StudentID      string `json:"student_id" validate:"required,uuid"`
	SubjectID      string `json:"subject_id" validate:"required,uuid"`
	StartTime      string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime        string `json:"end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ConferenceLink string `json:"conference_link" validate:"omitempty,url"`
	WhiteboardLink string `json:"whiteboard_link" validate:"omitempty,url"`
}

// lessonFor loads the lesson for a participant. Admins see every lesson;
// anyone else gets a not-found.
func (h *Handler) lessonFor(c *fiber.Ctx, claims *middleware.Claims) (*models.Lesson, error) {
	id, err := paramUUID(c, "lessonId")
	if err != nil {
		return nil, err
	}
	return h.Lessons.GetLessonAs(c.UserContext(), id, claims.UserID, claims.Role == models.RoleAdmin)
}

func (h *Handler) GetLesson(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lesson, err := h.lessonFor(c, claims)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(lesson)
}

func (h *Handler) CancelLesson(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lesson, err := h.lessonFor(c, claims)
	if err != nil {
		return h.fail(c, err)
	}
	cancelled, err := h.Lessons.CancelLesson(c.UserContext(), lesson.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cancelled)
}

func (h *Handler) CompleteLesson(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lesson, err := h.lessonFor(c, claims)
	if err != nil {
		return h.fail(c, err)
	}
	if lesson.TeacherID != claims.UserID {
		return h.fail(c, errForbidden)
	}
	completed, err := h.Lessons.CompleteLesson(c.UserContext(), lesson.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(completed)
}

func (h *Handler) CreateLesson(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req CreateLessonRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	in := services.CreateLessonInput{
		TeacherID:      claims.UserID,
		StudentID:      uuid.MustParse(req.StudentID),
		SubjectID:      uuid.MustParse(req.SubjectID),
		ConferenceLink: req.ConferenceLink,
		WhiteboardLink: req.WhiteboardLink,
	}
	// The validator has already checked both timestamps.
	in.StartTime, _ = parseTime(req.StartTime)
	in.EndTime, _ = parseTime(req.EndTime)

	lesson, err := h.Lessons.CreateLesson(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (h *Handler) ListTeacherLessons(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	window, err := timeWindow(c)
	if err != nil {
		return h.fail(c, err)
	}
	lessons, err := h.Lessons.ListTeacherLessons(c.UserContext(), claims.UserID, window)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(lessons))
}

func (h *Handler) ListStudentLessons(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	window, err := timeWindow(c)
	if err != nil {
		return h.fail(c, err)
	}
	lessons, err := h.Lessons.ListStudentLessons(c.UserContext(), claims.UserID, window)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(lessons))
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
