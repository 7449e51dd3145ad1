package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `json:"id" db:"user_id"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	FullName      string     `json:"full_name" db:"full_name"`
	Role          string     `json:"role" db:"role"`
	CompanyName   *string    `json:"company_name,omitempty" db:"company_name"`
	ContactPerson *string    `json:"contact_person,omitempty" db:"contact_person"`
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	Description   *string    `json:"description,omitempty" db:"description"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt     *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FullName    string  `json:"full_name" validate:"required,min=2"`
	Role        string  `json:"role" validate:"required,oneof=seller buyer"`
	CompanyName *string `json:"company_name,omitempty"`
}

type UpdateUserInput struct {
	FullName      *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	CompanyName   **string `json:"company_name,omitempty"`
	ContactPerson **string `json:"contact_person,omitempty"`
	Phone         **string `json:"phone,omitempty"`
	Description   **string `json:"description,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleSeller UserRole = "seller"
	RoleBuyer  UserRole = "buyer"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSeller, RoleBuyer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// UserSummary is the counterpart info disclosed in listings before any NDA.
type UserSummary struct {
	ID          uuid.UUID `json:"id" db:"user_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	CompanyName *string   `json:"company_name,omitempty" db:"company_name"`
	Role        string    `json:"role" db:"role"`
}
