package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/middleware"
	"dealbridge/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	created, err := h.commentService.Create(c.Context(), caseID, middleware.GetCurrentUserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	params := getPaginationParams(c)

	result, err := h.commentService.ListByCase(c.Context(), caseID, middleware.GetActor(c), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
