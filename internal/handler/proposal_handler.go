package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/middleware"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/audit"
	"dealbridge/internal/service/lifecycle"
	"dealbridge/internal/service/proposal"
)

type ProposalHandler struct {
	proposalService  proposal.Service
	lifecycleService lifecycle.Service
}

func NewProposalHandler(proposalService proposal.Service, lifecycleService lifecycle.Service) *ProposalHandler {
	return &ProposalHandler{
		proposalService:  proposalService,
		lifecycleService: lifecycleService,
	}
}

func (h *ProposalHandler) Create(c *fiber.Ctx) error {
	sellerID := middleware.GetCurrentUserID(c)

	var input domain.CreateProposalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Title == "" || input.BriefContent == "" || input.DetailedContent == "" {
		return middleware.BadRequest("Title, brief content and detailed content are required")
	}

	p, err := h.proposalService.Create(c.Context(), sellerID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProposalHandler) Update(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	var input domain.UpdateProposalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.proposalService.Update(c.Context(), proposalID, middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProposalHandler) Get(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	view, err := h.lifecycleService.GetProposal(c.Context(), proposalID, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *ProposalHandler) ListApproved(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.proposalService.ListApproved(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProposalHandler) ListMine(c *fiber.Ctx) error {
	sellerID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.proposalService.ListMine(c.Context(), sellerID, statusFilter(c), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProposalHandler) ListAll(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.proposalService.ListAll(c.Context(), statusFilter(c), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProposalHandler) Submit(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionSubmit, rules.Payload{})
}

func (h *ProposalHandler) Resubmit(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionResubmit, rules.Payload{})
}

func (h *ProposalHandler) Archive(c *fiber.Ctx) error {
	return h.applyAction(c, rules.ActionArchive, rules.Payload{})
}

func (h *ProposalHandler) Delete(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	_, err = h.lifecycleService.ApplyProposalAction(c.Context(), proposalID, rules.ActionDelete, rules.Payload{}, middleware.GetActor(c), requestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// Review is the admin verdict on a submitted proposal: approve, or reject
// with a mandatory reason.
func (h *ProposalHandler) Review(c *fiber.Ctx) error {
	var input domain.ReviewProposalInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	action := rules.ActionApprove
	payload := rules.Payload{}
	if !input.Approved {
		action = rules.ActionReject
		if input.RejectReason != nil {
			payload.Reason = *input.RejectReason
		}
	}

	return h.applyAction(c, action, payload)
}

func (h *ProposalHandler) applyAction(c *fiber.Ctx, action rules.Action, payload rules.Payload) error {
	proposalID, err := uuid.Parse(c.Params("proposalId"))
	if err != nil {
		return middleware.BadRequest("Invalid proposal ID")
	}

	view, err := h.lifecycleService.ApplyProposalAction(c.Context(), proposalID, action, payload, middleware.GetActor(c), requestMeta(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func statusFilter(c *fiber.Ctx) *domain.ProposalStatus {
	if s := c.Query("status"); s != "" {
		status := domain.ProposalStatus(s)
		if status.IsValid() {
			return &status
		}
	}
	return nil
}

func requestMeta(c *fiber.Ctx) *audit.RequestMeta {
	return &audit.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgentFromContext(c),
	}
}
