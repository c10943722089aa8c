package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errUploadsDisabled = fiber.NewError(fiber.StatusServiceUnavailable, "File uploads are not configured")

// GenerateUploadSignature signs a direct browser upload to the attachment folder.
func (h *Handler) GenerateUploadSignature(c *fiber.Ctx) error {
	if h.Signer == nil {
		return h.fail(c, errUploadsDisabled)
	}
	signature, err := h.Signer.Sign(time.Now())
	if err != nil {
		h.Log.Error("failed to sign upload params", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("storage_failure", "Failed to sign upload params"))
	}
	return c.JSON(signature)
}
