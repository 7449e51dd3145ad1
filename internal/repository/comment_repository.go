package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dealbridge/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByCase(ctx context.Context, caseID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (comment_id, case_id, author_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.ID, comment.CaseID, comment.AuthorID, comment.Content,
	).Scan(&comment.CreatedAt)
}

func (r *commentRepository) ListByCase(ctx context.Context, caseID uuid.UUID, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE case_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, caseID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.comment_id, c.case_id, c.author_id, c.content, c.created_at,
			u.user_id, u.full_name, u.company_name, u.role
		FROM comments c
		INNER JOIN users u ON c.author_id = u.user_id
		WHERE c.case_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, caseID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		var author domain.UserSummary
		err := rows.Scan(
			&c.ID, &c.CaseID, &c.AuthorID, &c.Content, &c.CreatedAt,
			&author.ID, &author.FullName, &author.CompanyName, &author.Role,
		)
		if err != nil {
			return nil, 0, err
		}
		c.Author = &author
		comments = append(comments, c)
	}

	return comments, total, rows.Err()
}
