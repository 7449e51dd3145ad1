package user

import (
	"context"

	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
)

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error)
	ListBuyers(ctx context.Context) ([]domain.UserSummary, error)
	ListAll(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	userRepo repository.UserRepository
}

func NewService(userRepo repository.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, rules.NotFound("user not found")
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, rules.NotFound("user not found")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.CompanyName != nil {
		user.CompanyName = *input.CompanyName
	}
	if input.ContactPerson != nil {
		user.ContactPerson = *input.ContactPerson
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Description != nil {
		user.Description = *input.Description
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListBuyers returns the active buyers a seller can target with a case.
func (s *service) ListBuyers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.userRepo.ListByRole(ctx, string(domain.RoleBuyer))
}

func (s *service) ListAll(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	params.Validate()
	users, total, err := s.userRepo.ListAll(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}

	return domain.NewPaginatedResponse(users, params.Page, params.PageSize, total), nil
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return rules.NotFound("user not found")
	}

	user.IsActive = false
	return s.userRepo.Update(ctx, user)
}
