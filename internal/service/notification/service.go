package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/service/email"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)

	NotifyCaseReceived(ctx context.Context, caseID uuid.UUID) error
	NotifyCaseInterest(ctx context.Context, caseID uuid.UUID) error
	NotifyCaseDeclined(ctx context.Context, caseID uuid.UUID) error
	NotifyNDASigned(ctx context.Context, caseID uuid.UUID) error
	NotifyProposalReviewed(ctx context.Context, proposalID uuid.UUID, approved bool) error
	NotifyNewComment(ctx context.Context, caseID, authorID uuid.UUID) error
}

type service struct {
	notifRepo    repository.NotificationRepository
	userRepo     repository.UserRepository
	proposalRepo repository.ProposalRepository
	caseRepo     repository.CaseRepository
	emailSvc     email.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	proposalRepo repository.ProposalRepository,
	caseRepo repository.CaseRepository,
	emailSvc email.Service,
) Service {
	return &service{
		notifRepo:    notifRepo,
		userRepo:     userRepo,
		proposalRepo: proposalRepo,
		caseRepo:     caseRepo,
		emailSvc:     emailSvc,
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// loadCaseParties fetches a case with its proposal and both party users.
func (s *service) loadCaseParties(ctx context.Context, caseID uuid.UUID) (*domain.Case, *domain.Proposal, *domain.User, *domain.User, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get case: %w", err)
	}
	if c == nil {
		return nil, nil, nil, nil, fmt.Errorf("case %s not found", caseID)
	}

	p, err := s.proposalRepo.GetByID(ctx, c.ProposalID)
	if err != nil || p == nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get proposal: %w", err)
	}

	seller, err := s.userRepo.GetByID(ctx, c.SellerID)
	if err != nil || seller == nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get seller: %w", err)
	}

	buyer, err := s.userRepo.GetByID(ctx, c.BuyerID)
	if err != nil || buyer == nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to get buyer: %w", err)
	}

	return c, p, seller, buyer, nil
}

func caseData(c *domain.Case) json.RawMessage {
	data, _ := json.Marshal(map[string]string{
		"case_id":     c.ID.String(),
		"proposal_id": c.ProposalID.String(),
	})
	return data
}

func (s *service) NotifyCaseReceived(ctx context.Context, caseID uuid.UUID) error {
	c, p, _, buyer, err := s.loadCaseParties(ctx, caseID)
	if err != nil {
		return err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  buyer.ID,
		Type:    domain.NotifCaseReceived,
		Title:   "New Acquisition Opportunity",
		Message: fmt.Sprintf("You have been offered the opportunity %q", p.Title),
		Data:    caseData(c),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil && buyer.Email != "" {
		go func(toEmail, name, title string) {
			_ = s.emailSvc.SendCaseReceivedEmail(context.Background(), toEmail, name, title)
		}(buyer.Email, buyer.FullName, p.Title)
	}

	return nil
}

func (s *service) NotifyCaseInterest(ctx context.Context, caseID uuid.UUID) error {
	c, p, seller, buyer, err := s.loadCaseParties(ctx, caseID)
	if err != nil {
		return err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  seller.ID,
		Type:    domain.NotifCaseInterest,
		Title:   "Buyer Expressed Interest",
		Message: fmt.Sprintf("%s expressed interest in %q", buyer.FullName, p.Title),
		Data:    caseData(c),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyCaseDeclined(ctx context.Context, caseID uuid.UUID) error {
	c, p, seller, buyer, err := s.loadCaseParties(ctx, caseID)
	if err != nil {
		return err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  seller.ID,
		Type:    domain.NotifCaseDeclined,
		Title:   "Opportunity Declined",
		Message: fmt.Sprintf("%s declined the opportunity %q", buyer.FullName, p.Title),
		Data:    caseData(c),
	}
	return s.notifRepo.Create(ctx, notif)
}

func (s *service) NotifyNDASigned(ctx context.Context, caseID uuid.UUID) error {
	c, p, seller, buyer, err := s.loadCaseParties(ctx, caseID)
	if err != nil {
		return err
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  seller.ID,
		Type:    domain.NotifNDASigned,
		Title:   "NDA Signed",
		Message: fmt.Sprintf("%s signed the NDA for %q", buyer.FullName, p.Title),
		Data:    caseData(c),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil {
		go func(sellerEmail, sellerName, buyerEmail, buyerName, title string) {
			ctx := context.Background()
			if sellerEmail != "" {
				_ = s.emailSvc.SendNDASignedEmail(ctx, sellerEmail, sellerName, title)
			}
			if buyerEmail != "" {
				_ = s.emailSvc.SendNDASignedEmail(ctx, buyerEmail, buyerName, title)
			}
		}(seller.Email, seller.FullName, buyer.Email, buyer.FullName, p.Title)
	}

	return nil
}

func (s *service) NotifyProposalReviewed(ctx context.Context, proposalID uuid.UUID, approved bool) error {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return fmt.Errorf("failed to get proposal: %w", err)
	}
	if p == nil {
		return fmt.Errorf("proposal %s not found", proposalID)
	}

	seller, err := s.userRepo.GetByID(ctx, p.SellerID)
	if err != nil || seller == nil {
		return fmt.Errorf("failed to get seller: %w", err)
	}

	notifType := domain.NotifProposalApproved
	title := "Proposal Approved"
	message := fmt.Sprintf("Your proposal %q has been approved and is now listed", p.Title)
	var reason string
	if !approved {
		notifType = domain.NotifProposalRejected
		title = "Proposal Rejected"
		if p.RejectionReason != nil {
			reason = *p.RejectionReason
		}
		message = fmt.Sprintf("Your proposal %q has been rejected: %s", p.Title, reason)
	}

	data, _ := json.Marshal(map[string]string{"proposal_id": p.ID.String()})
	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  seller.ID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    json.RawMessage(data),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil && seller.Email != "" {
		go func(toEmail, name, title string, approved bool, reason string) {
			_ = s.emailSvc.SendProposalReviewedEmail(context.Background(), toEmail, name, title, approved, reason)
		}(seller.Email, seller.FullName, p.Title, approved, reason)
	}

	return nil
}

func (s *service) NotifyNewComment(ctx context.Context, caseID, authorID uuid.UUID) error {
	c, p, seller, buyer, err := s.loadCaseParties(ctx, caseID)
	if err != nil {
		return err
	}

	// The recipient is the party that did not write the comment.
	author, recipient := seller, buyer
	if authorID == buyer.ID {
		author, recipient = buyer, seller
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  recipient.ID,
		Type:    domain.NotifNewComment,
		Title:   "New Message",
		Message: fmt.Sprintf("%s posted a new message on the case for %q", author.FullName, p.Title),
		Data:    caseData(c),
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return err
	}

	if s.emailSvc != nil && recipient.Email != "" {
		go func(toEmail, recipientName, authorName, title string) {
			_ = s.emailSvc.SendNewCommentEmail(context.Background(), toEmail, recipientName, authorName, title)
		}(recipient.Email, recipient.FullName, author.FullName, p.Title)
	}

	return nil
}
