package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dealbridge/internal/domain"
)

type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	UpdateContent(ctx context.Context, p *domain.Proposal) error
	// ApplyTransition persists the status change and its stamped fields in one
	// statement, guarded by the status the caller loaded. It reports false
	// when the row moved in the meantime, so the caller can surface a
	// conflict instead of overwriting someone else's transition.
	ApplyTransition(ctx context.Context, p *domain.Proposal, expected domain.ProposalStatus) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error)
	ListAll(ctx context.Context, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error)
	ListApproved(ctx context.Context, params domain.PaginationParams) ([]domain.Proposal, int64, error)
}

type proposalRepository struct {
	db *sqlx.DB
}

func NewProposalRepository(db *sqlx.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	query := `
		INSERT INTO proposals (proposal_id, seller_id, title, brief_content, detailed_content, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.SellerID, p.Title, p.BriefContent, p.DetailedContent, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	var p domain.Proposal
	query := `SELECT * FROM proposals WHERE proposal_id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *proposalRepository) UpdateContent(ctx context.Context, p *domain.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $2, brief_content = $3, detailed_content = $4, updated_at = NOW()
		WHERE proposal_id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.Title, p.BriefContent, p.DetailedContent,
	).Scan(&p.UpdatedAt)
}

func (r *proposalRepository) ApplyTransition(ctx context.Context, p *domain.Proposal, expected domain.ProposalStatus) (bool, error) {
	query := `
		UPDATE proposals
		SET status = $3, rejection_reason = $4, submitted_at = $5,
			reviewed_at = $6, reviewed_by = $7, updated_at = NOW()
		WHERE proposal_id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query,
		p.ID, expected, p.Status, p.RejectionReason, p.SubmittedAt, p.ReviewedAt, p.ReviewedBy,
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *proposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM proposals WHERE proposal_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *proposalRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	params.Validate()

	var total int64
	var proposals []domain.Proposal

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM proposals WHERE seller_id = $1 AND status = $2`
		if err := r.db.GetContext(ctx, &total, countQuery, sellerID, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM proposals
			WHERE seller_id = $1 AND status = $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4`
		err := r.db.SelectContext(ctx, &proposals, query, sellerID, *status, params.PageSize, params.Offset())
		return proposals, total, err
	}

	countQuery := `SELECT COUNT(*) FROM proposals WHERE seller_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, sellerID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM proposals
		WHERE seller_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &proposals, query, sellerID, params.PageSize, params.Offset())
	return proposals, total, err
}

func (r *proposalRepository) ListAll(ctx context.Context, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	params.Validate()

	var total int64
	var proposals []domain.Proposal

	if status != nil {
		countQuery := `SELECT COUNT(*) FROM proposals WHERE status = $1`
		if err := r.db.GetContext(ctx, &total, countQuery, *status); err != nil {
			return nil, 0, err
		}

		query := `
			SELECT * FROM proposals
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		err := r.db.SelectContext(ctx, &proposals, query, *status, params.PageSize, params.Offset())
		return proposals, total, err
	}

	countQuery := `SELECT COUNT(*) FROM proposals`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM proposals
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &proposals, query, params.PageSize, params.Offset())
	return proposals, total, err
}

func (r *proposalRepository) ListApproved(ctx context.Context, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	status := domain.ProposalApproved
	return r.ListAll(ctx, &status, params)
}
