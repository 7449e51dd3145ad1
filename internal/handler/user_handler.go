package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/middleware"
	"dealbridge/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	u := middleware.GetCurrentUser(c)
	if u == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(u)
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// ListBuyers backs the buyer picker a seller uses when opening a case.
func (h *UserHandler) ListBuyers(c *fiber.Ctx) error {
	buyers, err := h.userService.ListBuyers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"buyers": buyers})
}

func (h *UserHandler) ListAll(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.userService.ListAll(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.userService.Deactivate(c.Context(), userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User deactivated"})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
