package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/audit"
	"dealbridge/internal/service/notification"
)

// approvedListingPattern matches every cached page of the public approved
// listing. Any transition that adds or removes an approved proposal
// invalidates the whole set.
const approvedListingPattern = "proposals:approved:*"

// Service drives every status transition for proposals and cases. It loads
// the entity, asks the rules package for a verdict, persists the outcome
// guarded by the status it loaded, and fans out audit and notification
// side effects. Nothing is written when validation fails.
type Service interface {
	ApplyProposalAction(ctx context.Context, id uuid.UUID, action rules.Action, payload rules.Payload, actor rules.Actor, meta *audit.RequestMeta) (*domain.ProposalView, error)
	ApplyCaseAction(ctx context.Context, id uuid.UUID, action rules.Action, payload rules.Payload, actor rules.Actor, meta *audit.RequestMeta) (*domain.CaseView, error)
	GetProposal(ctx context.Context, id uuid.UUID, actor rules.Actor) (*domain.ProposalView, error)
	GetCase(ctx context.Context, id uuid.UUID, actor rules.Actor) (*domain.CaseView, error)
}

type service struct {
	proposalRepo repository.ProposalRepository
	caseRepo     repository.CaseRepository
	userRepo     repository.UserRepository
	auditSvc     audit.Service
	notifSvc     notification.Service
	redis        *redis.Client
}

func NewService(
	proposalRepo repository.ProposalRepository,
	caseRepo repository.CaseRepository,
	userRepo repository.UserRepository,
	auditSvc audit.Service,
	notifSvc notification.Service,
	redisClient *redis.Client,
) Service {
	return &service{
		proposalRepo: proposalRepo,
		caseRepo:     caseRepo,
		userRepo:     userRepo,
		auditSvc:     auditSvc,
		notifSvc:     notifSvc,
		redis:        redisClient,
	}
}

func (s *service) ApplyProposalAction(ctx context.Context, id uuid.UUID, action rules.Action, payload rules.Payload, actor rules.Actor, meta *audit.RequestMeta) (*domain.ProposalView, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	outcome, err := rules.Validate(rules.SnapshotOfProposal(p), action, actor, payload)
	if err != nil {
		return nil, err
	}

	oldStatus := p.Status

	if outcome.Removed {
		if err := s.proposalRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		s.recordAudit(ctx, actor, action, "PROPOSAL", id, map[string]string{"status": string(oldStatus)}, nil, meta)
		return nil, nil
	}

	now := time.Now()
	p.Status = domain.ProposalStatus(outcome.NewStatus)
	if outcome.StampSubmitted {
		p.SubmittedAt = &now
	}
	if outcome.StampReviewed {
		p.ReviewedAt = &now
		reviewer := actor.ID
		p.ReviewedBy = &reviewer
	}
	if outcome.SetRejectionReason != nil {
		p.RejectionReason = outcome.SetRejectionReason
	}
	if outcome.ClearRejectionReason {
		p.RejectionReason = nil
	}

	ok, err := s.proposalRepo.ApplyTransition(ctx, p, oldStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rules.Conflict("proposal was modified concurrently, reload and retry")
	}

	s.recordAudit(ctx, actor, action, "PROPOSAL", id,
		map[string]string{"status": string(oldStatus)},
		map[string]string{"status": string(p.Status)},
		meta)

	switch action {
	case rules.ActionApprove:
		s.invalidateApprovedListing(ctx)
		s.notifyAsync(func(ctx context.Context) error {
			return s.notifSvc.NotifyProposalReviewed(ctx, id, true)
		})
	case rules.ActionReject:
		s.notifyAsync(func(ctx context.Context) error {
			return s.notifSvc.NotifyProposalReviewed(ctx, id, false)
		})
	case rules.ActionArchive:
		s.invalidateApprovedListing(ctx)
	}

	return rules.ProjectProposal(p, actor, false), nil
}

func (s *service) ApplyCaseAction(ctx context.Context, id uuid.UUID, action rules.Action, payload rules.Payload, actor rules.Actor, meta *audit.RequestMeta) (*domain.CaseView, error) {
	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, rules.NotFound("case not found")
	}

	outcome, err := rules.Validate(rules.SnapshotOfCase(c), action, actor, payload)
	if err != nil {
		return nil, err
	}

	oldStatus := c.Status

	now := time.Now()
	c.Status = domain.CaseStatus(outcome.NewStatus)
	if outcome.StampInterested {
		c.InterestedAt = &now
	}
	if outcome.StampNDASigned {
		c.NDASignedAt = &now
	}
	if outcome.StampCancelled {
		c.CancelledAt = &now
	}

	ok, err := s.caseRepo.ApplyTransition(ctx, c, oldStatus)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rules.Conflict("case was modified concurrently, reload and retry")
	}

	s.recordAudit(ctx, actor, action, "CASE", id,
		map[string]string{"status": string(oldStatus)},
		map[string]string{"status": string(c.Status)},
		meta)

	switch action {
	case rules.ActionExpressInterest:
		s.notifyAsync(func(ctx context.Context) error {
			return s.notifSvc.NotifyCaseInterest(ctx, id)
		})
	case rules.ActionDecline:
		s.notifyAsync(func(ctx context.Context) error {
			return s.notifSvc.NotifyCaseDeclined(ctx, id)
		})
	case rules.ActionSignNDA:
		s.notifyAsync(func(ctx context.Context) error {
			return s.notifSvc.NotifyNDASigned(ctx, id)
		})
	}

	return s.projectCase(ctx, c, actor)
}

func (s *service) GetProposal(ctx context.Context, id uuid.UUID, actor rules.Actor) (*domain.ProposalView, error) {
	p, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	unlocked, err := s.ndaUnlocked(ctx, p, actor)
	if err != nil {
		return nil, err
	}

	return rules.ProjectProposal(p, actor, unlocked), nil
}

func (s *service) GetCase(ctx context.Context, id uuid.UUID, actor rules.Actor) (*domain.CaseView, error) {
	c, err := s.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, rules.NotFound("case not found")
	}

	return s.projectCase(ctx, c, actor)
}

// ndaUnlocked reports whether actor is linked to the proposal through a case
// that has reached the NDA gate.
func (s *service) ndaUnlocked(ctx context.Context, p *domain.Proposal, actor rules.Actor) (bool, error) {
	if actor.ID == p.SellerID || actor.Role == domain.RoleAdmin {
		return false, nil
	}

	c, err := s.caseRepo.GetByProposalAndBuyer(ctx, p.ID, actor.ID)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	return rules.ContentUnlocked(c.Status), nil
}

func (s *service) projectCase(ctx context.Context, c *domain.Case, actor rules.Actor) (*domain.CaseView, error) {
	p, err := s.proposalRepo.GetByID(ctx, c.ProposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("case %s references missing proposal %s", c.ID, c.ProposalID)
	}

	seller, err := s.userRepo.GetByID(ctx, c.SellerID)
	if err != nil {
		return nil, err
	}
	buyer, err := s.userRepo.GetByID(ctx, c.BuyerID)
	if err != nil {
		return nil, err
	}

	view, ok := rules.ProjectCase(c, p, seller, buyer, actor)
	if !ok {
		return nil, rules.Forbidden("you are not a party to this case")
	}
	return view, nil
}

func (s *service) recordAudit(ctx context.Context, actor rules.Actor, action rules.Action, entityType string, entityID uuid.UUID, oldValue, newValue interface{}, meta *audit.RequestMeta) {
	if s.auditSvc == nil {
		return
	}

	input := audit.RecordInput{
		UserID:     actor.ID,
		Action:     strings.ToUpper(string(action)) + "_" + entityType,
		EntityType: entityType,
		EntityID:   entityID,
		OldValue:   oldValue,
		NewValue:   newValue,
		Meta:       meta,
	}

	go func() {
		_ = s.auditSvc.Record(context.Background(), input)
	}()
}

func (s *service) notifyAsync(fn func(ctx context.Context) error) {
	if s.notifSvc == nil {
		return
	}
	go func() {
		_ = fn(context.Background())
	}()
}

func (s *service) invalidateApprovedListing(ctx context.Context) {
	if s.redis == nil {
		return
	}

	keys, err := s.redis.Keys(ctx, approvedListingPattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = s.redis.Del(ctx, keys...).Err()
}
