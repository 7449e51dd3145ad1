package domain

import (
	"time"

	"github.com/google/uuid"
)

// Proposal is a seller-authored acquisition pitch. Content fields are only
// mutable by the owning seller while the proposal is still a draft; review
// actions belong to admins.
type Proposal struct {
	ID              uuid.UUID      `json:"id" db:"proposal_id"`
	SellerID        uuid.UUID      `json:"seller_id" db:"seller_id"`
	Title           string         `json:"title" db:"title"`
	BriefContent    string         `json:"brief_content" db:"brief_content"`
	DetailedContent string         `json:"detailed_content" db:"detailed_content"`
	Status          ProposalStatus `json:"status" db:"status"`
	RejectionReason *string        `json:"rejection_reason,omitempty" db:"rejection_reason"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty" db:"submitted_at"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy      *uuid.UUID     `json:"reviewed_by,omitempty" db:"reviewed_by"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

type ProposalStatus string

const (
	ProposalDraft       ProposalStatus = "draft"
	ProposalUnderReview ProposalStatus = "under_review"
	ProposalApproved    ProposalStatus = "approved"
	ProposalRejected    ProposalStatus = "rejected"
	ProposalArchived    ProposalStatus = "archived"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalDraft, ProposalUnderReview, ProposalApproved, ProposalRejected, ProposalArchived:
		return true
	default:
		return false
	}
}

type CreateProposalInput struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	BriefContent    string `json:"brief_content" validate:"required,min=1"`
	DetailedContent string `json:"detailed_content" validate:"required,min=1"`
}

type UpdateProposalInput struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	BriefContent    *string `json:"brief_content,omitempty" validate:"omitempty,min=1"`
	DetailedContent *string `json:"detailed_content,omitempty" validate:"omitempty,min=1"`
}

type ReviewProposalInput struct {
	Approved     bool    `json:"approved"`
	RejectReason *string `json:"reject_reason,omitempty"`
}

// ProposalView is the viewer-scoped projection of a Proposal. Title, brief
// content and status are visible to any authenticated user; the rest is
// disclosed per the visibility policy.
type ProposalView struct {
	ID              uuid.UUID      `json:"id"`
	SellerID        uuid.UUID      `json:"seller_id"`
	Title           string         `json:"title"`
	BriefContent    string         `json:"brief_content"`
	Status          ProposalStatus `json:"status"`
	DetailedContent *string        `json:"detailed_content,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time     `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
