package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/middleware"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/cases"
	"dealbridge/internal/service/lifecycle"
)

type CaseHandler struct {
	caseService      cases.Service
	lifecycleService lifecycle.Service
}

func NewCaseHandler(caseService cases.Service, lifecycleService lifecycle.Service) *CaseHandler {
	return &CaseHandler{
		caseService:      caseService,
		lifecycleService: lifecycleService,
	}
}

func (h *CaseHandler) Create(c *fiber.Ctx) error {
	sellerID := middleware.GetCurrentUserID(c)

	var input domain.CreateCaseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.ProposalID == uuid.Nil || input.BuyerID == uuid.Nil {
		return middleware.BadRequest("proposal_id and buyer_id are required")
	}

	created, err := h.caseService.Create(c.Context(), sellerID, input, requestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CaseHandler) Get(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	view, err := h.lifecycleService.GetCase(c.Context(), caseID, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *CaseHandler) ListSent(c *fiber.Ctx) error {
	sellerID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.caseService.ListSent(c.Context(), sellerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CaseHandler) ListReceived(c *fiber.Ctx) error {
	buyerID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.caseService.ListReceived(c.Context(), buyerID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *CaseHandler) ExpressInterest(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionExpressInterest)
}

func (h *CaseHandler) Decline(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionDecline)
}

func (h *CaseHandler) SignNDA(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionSignNDA)
}

func (h *CaseHandler) Advance(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionAdvance)
}

func (h *CaseHandler) Complete(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionComplete)
}

func (h *CaseHandler) ContactInfo(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	info, err := h.caseService.ContactInfo(c.Context(), caseID, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(info)
}

func (h *CaseHandler) applyAction(c *fiber.Ctx, action rules.Action) error {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return middleware.BadRequest("Invalid case ID")
	}

	view, err := h.lifecycleService.ApplyCaseAction(c.Context(), caseID, action, rules.Payload{}, middleware.GetActor(c), requestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}
