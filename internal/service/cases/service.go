package cases

import (
	"context"

	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/audit"
	"dealbridge/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input domain.CreateCaseInput, meta *audit.RequestMeta) (*domain.Case, error)
	ListSent(ctx context.Context, sellerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseListItem], error)
	ListReceived(ctx context.Context, buyerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseListItem], error)
	ContactInfo(ctx context.Context, caseID uuid.UUID, actor rules.Actor) (*domain.ContactInfo, error)
}

type service struct {
	caseRepo     repository.CaseRepository
	proposalRepo repository.ProposalRepository
	userRepo     repository.UserRepository
	auditSvc     audit.Service
	notifSvc     notification.Service
}

func NewService(
	caseRepo repository.CaseRepository,
	proposalRepo repository.ProposalRepository,
	userRepo repository.UserRepository,
	auditSvc audit.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		caseRepo:     caseRepo,
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		auditSvc:     auditSvc,
		notifSvc:     notifSvc,
	}
}

// Create opens a case offering an approved proposal to one buyer. The seller
// must own the proposal, the target must be an active buyer, and the same
// proposal can only be offered to a given buyer once.
func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input domain.CreateCaseInput, meta *audit.RequestMeta) (*domain.Case, error) {
	p, err := s.proposalRepo.GetByID(ctx, input.ProposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	if p.SellerID != sellerID {
		return nil, rules.Forbidden("only the owning seller may offer a proposal")
	}

	if p.Status != domain.ProposalApproved {
		return nil, rules.InvalidTransition("only approved proposals can be offered to buyers")
	}

	buyer, err := s.userRepo.GetByID(ctx, input.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer == nil || !buyer.IsActive {
		return nil, rules.NotFound("buyer not found")
	}
	if buyer.Role != string(domain.RoleBuyer) {
		return nil, rules.Invalid("target user is not a buyer")
	}

	existing, err := s.caseRepo.GetByProposalAndBuyer(ctx, input.ProposalID, input.BuyerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, rules.Conflict("this proposal has already been offered to this buyer")
	}

	c := &domain.Case{
		ID:             uuid.New(),
		ProposalID:     input.ProposalID,
		SellerID:       sellerID,
		BuyerID:        input.BuyerID,
		Status:         domain.CaseCreated,
		InitialMessage: input.InitialMessage,
	}

	if err := s.caseRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.auditSvc != nil {
		input := audit.RecordInput{
			UserID:     sellerID,
			Action:     "CREATE_CASE",
			EntityType: "CASE",
			EntityID:   c.ID,
			NewValue:   map[string]string{"status": string(c.Status), "proposal_id": c.ProposalID.String()},
			Meta:       meta,
		}
		go func() {
			_ = s.auditSvc.Record(context.Background(), input)
		}()
	}

	if s.notifSvc != nil {
		go func(caseID uuid.UUID) {
			_ = s.notifSvc.NotifyCaseReceived(context.Background(), caseID)
		}(c.ID)
	}

	return c, nil
}

func (s *service) ListSent(ctx context.Context, sellerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseListItem], error) {
	params.Validate()
	items, total, err := s.caseRepo.ListBySeller(ctx, sellerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CaseListItem]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

func (s *service) ListReceived(ctx context.Context, buyerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.CaseListItem], error) {
	params.Validate()
	items, total, err := s.caseRepo.ListByBuyer(ctx, buyerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.CaseListItem]{}, err
	}

	return domain.NewPaginatedResponse(items, params.Page, params.PageSize, total), nil
}

// ContactInfo discloses both parties' contact details to a party of the case
// once it has reached nda_signed or beyond. Admins run the platform but are
// not a party to the deal, so they are excluded on purpose.
func (s *service) ContactInfo(ctx context.Context, caseID uuid.UUID, actor rules.Actor) (*domain.ContactInfo, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, rules.NotFound("case not found")
	}

	if actor.ID != c.SellerID && actor.ID != c.BuyerID {
		return nil, rules.Forbidden("contact info is only available to the parties of the case")
	}

	if !rules.ContentUnlocked(c.Status) {
		return nil, rules.Forbidden("contact info is not available before the NDA is signed")
	}

	seller, err := s.userRepo.GetByID(ctx, c.SellerID)
	if err != nil {
		return nil, err
	}
	buyer, err := s.userRepo.GetByID(ctx, c.BuyerID)
	if err != nil {
		return nil, err
	}
	if seller == nil || buyer == nil {
		return nil, rules.NotFound("case party not found")
	}

	return &domain.ContactInfo{
		SellerName:  seller.FullName,
		SellerEmail: seller.Email,
		BuyerName:   buyer.FullName,
		BuyerEmail:  buyer.Email,
	}, nil
}
