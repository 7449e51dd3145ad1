package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/middleware"
	"dealbridge/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) ListRecent(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.auditService.ListRecent(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AuditHandler) ListByEntity(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return middleware.BadRequest("Invalid entity ID")
	}

	params := getPaginationParams(c)

	result, err := h.auditService.ListByEntity(c.Context(), entityType, entityID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
