package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dealbridge/internal/domain"
)

type CaseRepository struct {
	mock.Mock
}

func (m *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *CaseRepository) GetByProposalAndBuyer(ctx context.Context, proposalID, buyerID uuid.UUID) (*domain.Case, error) {
	args := m.Called(ctx, proposalID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *CaseRepository) ApplyTransition(ctx context.Context, c *domain.Case, expected domain.CaseStatus) (bool, error) {
	args := m.Called(ctx, c, expected)
	return args.Bool(0), args.Error(1)
}

func (m *CaseRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error) {
	args := m.Called(ctx, sellerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.CaseListItem), args.Get(1).(int64), args.Error(2)
}

func (m *CaseRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, params domain.PaginationParams) ([]domain.CaseListItem, int64, error) {
	args := m.Called(ctx, buyerID, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.CaseListItem), args.Get(1).(int64), args.Error(2)
}
