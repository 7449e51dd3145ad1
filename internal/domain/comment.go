package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only message on a Case. There is no edit or delete.
type Comment struct {
	ID        uuid.UUID `json:"id" db:"comment_id"`
	CaseID    uuid.UUID `json:"case_id" db:"case_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Author   *UserSummary `json:"author,omitempty" db:"-"`
	IsSeller bool         `json:"is_seller" db:"-"`
}

type CreateCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
