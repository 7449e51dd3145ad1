package domain

import (
	"time"

	"github.com/google/uuid"
)

// Case is a seller-initiated engagement that offers an approved Proposal to a
// single buyer. Both party ids and the proposal reference are immutable after
// creation; only the status and its timestamps move.
type Case struct {
	ID             uuid.UUID  `json:"id" db:"case_id"`
	ProposalID     uuid.UUID  `json:"proposal_id" db:"proposal_id"`
	SellerID       uuid.UUID  `json:"seller_id" db:"seller_id"`
	BuyerID        uuid.UUID  `json:"buyer_id" db:"buyer_id"`
	Status         CaseStatus `json:"status" db:"status"`
	InitialMessage *string    `json:"initial_message,omitempty" db:"initial_message"`
	InterestedAt   *time.Time `json:"interested_at,omitempty" db:"interested_at"`
	NDASignedAt    *time.Time `json:"nda_signed_at,omitempty" db:"nda_signed_at"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

type CaseStatus string

const (
	CaseCreated       CaseStatus = "created"
	CaseInterested    CaseStatus = "interested"
	CaseNDASigned     CaseStatus = "nda_signed"
	CaseInNegotiation CaseStatus = "in_negotiation"
	CaseCompleted     CaseStatus = "completed"
	CaseCancelled     CaseStatus = "cancelled"
)

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseCreated, CaseInterested, CaseNDASigned, CaseInNegotiation, CaseCompleted, CaseCancelled:
		return true
	default:
		return false
	}
}

type CreateCaseInput struct {
	ProposalID     uuid.UUID `json:"proposal_id" validate:"required"`
	BuyerID        uuid.UUID `json:"buyer_id" validate:"required"`
	InitialMessage *string   `json:"initial_message,omitempty" validate:"omitempty,max=2000"`
}

// ContactInfo is disclosed to the two parties once the case has reached
// nda_signed or beyond. It is never disclosed to anyone else.
type ContactInfo struct {
	SellerName  string `json:"seller_name"`
	SellerEmail string `json:"seller_email"`
	BuyerName   string `json:"buyer_name"`
	BuyerEmail  string `json:"buyer_email"`
}

// CaseView is the viewer-scoped projection of a Case together with the
// proposal content the viewer is entitled to see at the case's current stage.
type CaseView struct {
	ID              uuid.UUID    `json:"id"`
	ProposalID      uuid.UUID    `json:"proposal_id"`
	SellerID        uuid.UUID    `json:"seller_id"`
	BuyerID         uuid.UUID    `json:"buyer_id"`
	Status          CaseStatus   `json:"status"`
	InitialMessage  *string      `json:"initial_message,omitempty"`
	Title           string       `json:"title"`
	BriefContent    string       `json:"brief_content"`
	DetailedContent *string      `json:"detailed_content,omitempty"`
	Contact         *ContactInfo `json:"contact,omitempty"`
	InterestedAt    *time.Time   `json:"interested_at,omitempty"`
	NDASignedAt     *time.Time   `json:"nda_signed_at,omitempty"`
	CancelledAt     *time.Time   `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// CaseListItem is the compact row returned by the sent/received listings,
// carrying only pre-NDA counterpart info.
type CaseListItem struct {
	ID          uuid.UUID    `json:"id"`
	ProposalID  uuid.UUID    `json:"proposal_id"`
	Title       string       `json:"title"`
	Status      CaseStatus   `json:"status"`
	Counterpart *UserSummary `json:"counterpart,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
