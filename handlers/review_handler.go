package handlers

import (
	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateReview leaves the calling student's review for a lesson. Rating and
// comment bounds are checked by the review service so the reported reason
// follows its check order.
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lessonID, err := paramUUID(c, "lessonId")
	if err != nil {
		return h.fail(c, err)
	}
	var req CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	review, err := h.Reviews.CreateReview(c.UserContext(), services.CreateReviewInput{
		LessonID:  lessonID,
		TeacherID: uuid.MustParse(req.TeacherID),
		StudentID: claims.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *Handler) ListLessonReviews(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lesson, err := h.lessonFor(c, claims)
	if err != nil {
		return h.fail(c, err)
	}
	reviews, err := h.Reviews.ListLessonReviews(c.UserContext(), lesson.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(reviews))
}

func (h *Handler) ListTeacherReviews(c *fiber.Ctx) error {
	teacherID, err := paramUUID(c, "teacherId")
	if err != nil {
		return h.fail(c, err)
	}
	reviews, err := h.Reviews.ListTeacherReviews(c.UserContext(), teacherID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(reviews))
}

func (h *Handler) ListMyReviews(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	var reviews []models.Review
	if claims.Role == models.RoleTeacher {
		reviews, err = h.Reviews.ListTeacherReviews(c.UserContext(), claims.UserID)
	} else {
		reviews, err = h.Reviews.ListStudentReviews(c.UserContext(), claims.UserID)
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(reviews))
}
