package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConnectionRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
}

// SendConnectionRequest asks a teacher to accept the calling student.
func (h *Handler) SendConnectionRequest(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req ConnectionRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	request, err := h.Relationships.SendRequest(c.UserContext(), claims.UserID, uuid.MustParse(req.TeacherID))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

func (h *Handler) ListMyRequests(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	requests, err := h.Relationships.ListStudentRequests(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(requests))
}

func (h *Handler) ListMyTeachers(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	teachers, err := h.Relationships.ListStudentTeachers(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(teachers))
}

func (h *Handler) GetStudentStatistics(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Statistics.StudentStatistics(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}
