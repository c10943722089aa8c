package handlers

import (
	"github.com/educat/tutor_marketplace/services"
	"github.com/gofiber/fiber/v2"
)

type UploadAttachmentRequest struct {
	FileName      string `json:"file_name" validate:"required,max=255"`
	FileType      string `json:"file_type" validate:"max=100"`
	Base64Content string `json:"base64_content" validate:"required"`
}

func (h *Handler) UploadAttachment(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lessonID, err := paramUUID(c, "lessonId")
	if err != nil {
		return h.fail(c, err)
	}
	var req UploadAttachmentRequest
	if err := parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	attachment, err := h.Attachments.Upload(c.UserContext(), services.UploadAttachmentInput{
		LessonID:      lessonID,
		UploaderID:    claims.UserID,
		FileName:      req.FileName,
		FileType:      req.FileType,
		Base64Content: req.Base64Content,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(attachment)
}

func (h *Handler) ListAttachments(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return h.fail(c, err)
	}
	lessonID, err := paramUUID(c, "lessonId")
	if err != nil {
		return h.fail(c, err)
	}
	attachments, err := h.Attachments.List(c.UserContext(), lessonID, claims.UserID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(emptyIfNil(attachments))
}
