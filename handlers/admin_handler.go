package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecomputeRatingsRequest struct {
	TeacherID string `json:"teacher_id" validate:"omitempty,uuid"`
}

type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type CreatePreparationProgramRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// SweepLessons runs the batch status sweep on demand.
func (h *Handler) SweepLessons(c *fiber.Ctx) error {
	updated, err := h.Lessons.SweepStatuses(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	h.Log.Info("manual lesson sweep", zap.Int("updated", updated))
	return c.JSON(fiber.Map{"updated": updated})
}

// RecomputeRatings recomputes one teacher's rating, or every teacher's when
// the body names none.
func (h *Handler) RecomputeRatings(c *fiber.Ctx) error {
	var req RecomputeRatingsRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return h.fail(c, err)
		}
	}

	if req.TeacherID != "" {
		profile, err := h.Ratings.Recompute(c.UserContext(), uuid.MustParse(req.TeacherID))
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(profile)
	}

	count, err := h.Ratings.RecomputeAll(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"recomputed": count})
}

func (h *Handler) CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}
	subject, err := h.Subjects.Create(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}

func (h *Handler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.Subjects.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(subjects))
}

func (h *Handler) CreatePreparationProgram(c *fiber.Ctx) error {
	var req CreatePreparationProgramRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}
	program, err := h.Subjects.CreatePreparationProgram(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

func (h *Handler) ListPreparationPrograms(c *fiber.Ctx) error {
	programs, err := h.Subjects.ListPreparationPrograms(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(programs))
}
