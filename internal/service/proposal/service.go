package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
)

const listingCacheTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input domain.CreateProposalInput) (*domain.Proposal, error)
	Update(ctx context.Context, id uuid.UUID, actor rules.Actor, input domain.UpdateProposalInput) (*domain.Proposal, error)
	ListMine(ctx context.Context, sellerID uuid.UUID, status *domain.ProposalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Proposal], error)
	ListAll(ctx context.Context, status *domain.ProposalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Proposal], error)
	ListApproved(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ProposalView], error)
}

type service struct {
	proposalRepo repository.ProposalRepository
	redis        *redis.Client
}

func NewService(proposalRepo repository.ProposalRepository, redisClient *redis.Client) Service {
	return &service{
		proposalRepo: proposalRepo,
		redis:        redisClient,
	}
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input domain.CreateProposalInput) (*domain.Proposal, error) {
	p := &domain.Proposal{
		ID:              uuid.New(),
		SellerID:        sellerID,
		Title:           input.Title,
		BriefContent:    input.BriefContent,
		DetailedContent: input.DetailedContent,
		Status:          domain.ProposalDraft,
	}

	if err := s.proposalRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, actor rules.Actor, input domain.UpdateProposalInput) (*domain.Proposal, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	if p.SellerID != actor.ID {
		return nil, rules.Forbidden("only the owning seller may edit a proposal")
	}

	// Content is frozen once the proposal leaves draft; a rejected proposal
	// must be resubmitted back to draft before editing.
	if p.Status != domain.ProposalDraft {
		return nil, rules.InvalidTransition(fmt.Sprintf("proposal content is not editable in status %q", p.Status))
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.BriefContent != nil {
		p.BriefContent = *input.BriefContent
	}
	if input.DetailedContent != nil {
		p.DetailedContent = *input.DetailedContent
	}

	if err := s.proposalRepo.UpdateContent(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) ListMine(ctx context.Context, sellerID uuid.UUID, status *domain.ProposalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Proposal], error) {
	params.Validate()
	proposals, total, err := s.proposalRepo.ListBySeller(ctx, sellerID, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Proposal]{}, err
	}

	return domain.NewPaginatedResponse(proposals, params.Page, params.PageSize, total), nil
}

func (s *service) ListAll(ctx context.Context, status *domain.ProposalStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Proposal], error) {
	params.Validate()
	proposals, total, err := s.proposalRepo.ListAll(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Proposal]{}, err
	}

	return domain.NewPaginatedResponse(proposals, params.Page, params.PageSize, total), nil
}

// ListApproved is the public marketplace listing. Rows carry only the
// always-visible tier, so one cached copy serves every viewer.
func (s *service) ListApproved(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.ProposalView], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("proposals:approved:%d:%d", params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var resp domain.PaginatedResponse[domain.ProposalView]
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	proposals, total, err := s.proposalRepo.ListApproved(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.ProposalView]{}, err
	}

	views := make([]domain.ProposalView, 0, len(proposals))
	for i := range proposals {
		views = append(views, *rules.ProjectProposal(&proposals[i], rules.Actor{}, false))
	}

	resp := domain.NewPaginatedResponse(views, params.Page, params.PageSize, total)

	if s.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, listingCacheTTL).Err()
		}
	}

	return resp, nil
}
