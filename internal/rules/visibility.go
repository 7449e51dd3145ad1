package rules

import (
	"dealbridge/internal/domain"
)

// Relationship of a viewer to an entity.
type Relationship int

const (
	RelStranger Relationship = iota
	RelOwner
	RelCounterparty
	RelAdmin
)

// ProposalRelationship classifies the viewer against a proposal.
func ProposalRelationship(p *domain.Proposal, actor Actor) Relationship {
	switch {
	case actor.ID == p.SellerID:
		return RelOwner
	case actor.Role == domain.RoleAdmin:
		return RelAdmin
	default:
		return RelStranger
	}
}

// CaseRelationship classifies the viewer against a case.
func CaseRelationship(c *domain.Case, actor Actor) Relationship {
	switch {
	case actor.ID == c.SellerID:
		return RelOwner
	case actor.ID == c.BuyerID:
		return RelCounterparty
	case actor.Role == domain.RoleAdmin:
		return RelAdmin
	default:
		return RelStranger
	}
}

// ContentUnlocked reports whether a case's stage discloses the proposal's
// detailed content and the parties' contact info.
func ContentUnlocked(status domain.CaseStatus) bool {
	switch status {
	case domain.CaseNDASigned, domain.CaseInNegotiation, domain.CaseCompleted:
		return true
	default:
		return false
	}
}

// ProjectProposal returns the viewer-scoped projection of a proposal.
// Title, brief content and status are visible to any authenticated viewer.
// ndaUnlocked is true when the viewer is linked to the proposal through a
// case that has reached nda_signed or beyond.
func ProjectProposal(p *domain.Proposal, actor Actor, ndaUnlocked bool) *domain.ProposalView {
	rel := ProposalRelationship(p, actor)

	view := &domain.ProposalView{
		ID:           p.ID,
		SellerID:     p.SellerID,
		Title:        p.Title,
		BriefContent: p.BriefContent,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	if rel == RelOwner || rel == RelAdmin || ndaUnlocked {
		detailed := p.DetailedContent
		view.DetailedContent = &detailed
	}

	if rel == RelOwner || rel == RelAdmin {
		view.RejectionReason = p.RejectionReason
		view.SubmittedAt = p.SubmittedAt
		view.ReviewedAt = p.ReviewedAt
	}

	return view
}

// ProjectCase returns the viewer-scoped projection of a case, including the
// proposal content the viewer is entitled to at the case's stage. The second
// return value is false when the viewer is a stranger to the case; the caller
// must treat that as no access.
func ProjectCase(c *domain.Case, p *domain.Proposal, seller, buyer *domain.User, actor Actor) (*domain.CaseView, bool) {
	rel := CaseRelationship(c, actor)
	if rel == RelStranger {
		return &domain.CaseView{ID: c.ID}, false
	}

	view := &domain.CaseView{
		ID:             c.ID,
		ProposalID:     c.ProposalID,
		SellerID:       c.SellerID,
		BuyerID:        c.BuyerID,
		Status:         c.Status,
		InitialMessage: c.InitialMessage,
		Title:          p.Title,
		BriefContent:   p.BriefContent,
		InterestedAt:   c.InterestedAt,
		NDASignedAt:    c.NDASignedAt,
		CancelledAt:    c.CancelledAt,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}

	unlocked := ContentUnlocked(c.Status)

	// The seller owns the content and always sees it; admins see it by role;
	// the buyer sees it only once the NDA gate has opened.
	if rel == RelOwner || rel == RelAdmin || (rel == RelCounterparty && unlocked) {
		detailed := p.DetailedContent
		view.DetailedContent = &detailed
	}

	// Contact info is strictly between the two parties, and only post-NDA.
	if unlocked && (rel == RelOwner || rel == RelCounterparty) && seller != nil && buyer != nil {
		view.Contact = &domain.ContactInfo{
			SellerName:  seller.FullName,
			SellerEmail: seller.Email,
			BuyerName:   buyer.FullName,
			BuyerEmail:  buyer.Email,
		}
	}

	return view, true
}
