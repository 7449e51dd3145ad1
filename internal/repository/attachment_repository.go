package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dealbridge/internal/domain"
)

type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, a *domain.Attachment) error {
	query := `
		INSERT INTO attachments (attachment_id, proposal_id, uploaded_by, file_name, file_size, mime_type, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		a.ID, a.ProposalID, a.UploadedBy, a.FileName, a.FileSize, a.MimeType, a.StoragePath,
	).Scan(&a.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var a domain.Attachment
	query := `SELECT * FROM attachments WHERE attachment_id = $1`

	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM attachments WHERE attachment_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *attachmentRepository) ListByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	query := `SELECT * FROM attachments WHERE proposal_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &attachments, query, proposalID)
	return attachments, err
}
