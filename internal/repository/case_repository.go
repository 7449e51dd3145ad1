package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dealbridge/internal/domain"
)

type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	GetByProposalAndBuyer(ctx context.Context, proposalID, buyerID uuid.UUID) (*domain.Case, error)
	// ApplyTransition mirrors ProposalRepository.ApplyTransition: one guarded
	// statement, false when the expected status no longer matches.
	ApplyTransition(ctx context.Context, c *domain.Case, expected domain.CaseStatus) (bool, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error)
}

type caseRepository struct {
	db *sqlx.DB
}

func NewCaseRepository(db *sqlx.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	query := `
		INSERT INTO cases (case_id, proposal_id, seller_id, buyer_id, status, initial_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		c.ID, c.ProposalID, c.SellerID, c.BuyerID, c.Status, c.InitialMessage,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	query := `SELECT * FROM cases WHERE case_id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) GetByProposalAndBuyer(ctx context.Context, proposalID, buyerID uuid.UUID) (*domain.Case, error) {
	var c domain.Case
	query := `SELECT * FROM cases WHERE proposal_id = $1 AND buyer_id = $2`

	err := r.db.GetContext(ctx, &c, query, proposalID, buyerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) ApplyTransition(ctx context.Context, c *domain.Case, expected domain.CaseStatus) (bool, error) {
	query := `
		UPDATE cases
		SET status = $3, interested_at = $4, nda_signed_at = $5, cancelled_at = $6, updated_at = NOW()
		WHERE case_id = $1 AND status = $2`

	res, err := r.db.ExecContext(ctx, query,
		c.ID, expected, c.Status, c.InterestedAt, c.NDASignedAt, c.CancelledAt,
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

func (r *caseRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error) {
	return r.list(ctx, "seller_id", "buyer_id", sellerID, params)
}

func (r *caseRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error) {
	return r.list(ctx, "buyer_id", "seller_id", buyerID, params)
}

func (r *caseRepository) list(ctx context.Context, partyColumn, counterpartColumn string, partyID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM cases WHERE ` + partyColumn + ` = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, partyID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.case_id, c.proposal_id, p.title, c.status, c.created_at, c.updated_at,
			u.user_id, u.full_name, u.company_name, u.role
		FROM cases c
		INNER JOIN proposals p ON c.proposal_id = p.proposal_id
		INNER JOIN users u ON c.` + counterpartColumn + ` = u.user_id
		WHERE c.` + partyColumn + ` = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, partyID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.CaseListItem
	for rows.Next() {
		var item domain.CaseListItem
		var counterpart domain.UserSummary
		err := rows.Scan(
			&item.ID, &item.ProposalID, &item.Title, &item.Status, &item.CreatedAt, &item.UpdatedAt,
			&counterpart.ID, &counterpart.FullName, &counterpart.CompanyName, &counterpart.Role,
		)
		if err != nil {
			return nil, 0, err
		}
		item.Counterpart = &counterpart
		items = append(items, item)
	}

	return items, total, rows.Err()
}
