package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a document belonging to a Proposal (teaser deck, financials).
// Its visibility follows the proposal's detailed-content gating.
type Attachment struct {
	ID          uuid.UUID `json:"id" db:"attachment_id"`
	ProposalID  uuid.UUID `json:"proposal_id" db:"proposal_id"`
	UploadedBy  uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	StoragePath string    `json:"-" db:"storage_path"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
