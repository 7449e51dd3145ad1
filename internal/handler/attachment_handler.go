package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/middleware"
	"dealbridge/internal/service/attachment"
)

type AttachmentHandler struct {
	attachmentService attachment.Service
}

func NewAttachmentHandler(attachmentService attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	a, err := h.attachmentService.Upload(c.Context(), proposalID, middleware.GetActor(c), file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AttachmentHandler) List(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	attachments, err := h.attachmentService.List(c.Context(), proposalID, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attachments": attachments})
}

// Download hands out a short-lived presigned URL instead of streaming the
// object through the API.
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	url, err := h.attachmentService.DownloadURL(c.Context(), attachmentID, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"url": url})
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	if err := h.attachmentService.Delete(c.Context(), attachmentID, middleware.GetActor(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
