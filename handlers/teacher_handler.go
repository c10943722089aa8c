package handlers

import (
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListPendingRequests(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	requests, err := h.Relationships.ListPendingRequests(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(requests))
}

func (h *Handler) AcceptRequest(c *fiber.Ctx) error {
	return h.processRequest(c, true)
}

func (h *Handler) RejectRequest(c *fiber.Ctx) error {
	return h.processRequest(c, false)
}

func (h *Handler) processRequest(c *fiber.Ctx, accept bool) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	requestID, err := paramUUID(c, "requestId")
	if err != nil {
		return h.fail(c, err)
	}

	process := h.Relationships.RejectRequest
	if accept {
		process = h.Relationships.AcceptRequest
	}
	request, err := process(c.UserContext(), claims.UserID, requestID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(request)
}

func (h *Handler) ListMyStudents(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	students, err := h.Relationships.ListTeacherStudents(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(students))
}

func (h *Handler) RemoveStudent(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	studentID, err := paramUUID(c, "studentId")
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.Relationships.RemoveStudent(c.UserContext(), claims.UserID, studentID); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetMyStatistics(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Statistics.TeacherStatistics(c.UserContext(), claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

func (h *Handler) GetTeacherStatistics(c *fiber.Ctx) error {
	teacherID, err := paramUUID(c, "teacherId")
	if err != nil {
		return h.fail(c, err)
	}
	stats, err := h.Statistics.TeacherStatistics(c.UserContext(), teacherID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}
