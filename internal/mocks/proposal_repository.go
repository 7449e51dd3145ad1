package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dealbridge/internal/domain"
)

type ProposalRepository struct {
	mock.Mock
}

func (m *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *ProposalRepository) UpdateContent(ctx context.Context, p *domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProposalRepository) ApplyTransition(ctx context.Context, p *domain.Proposal, expected domain.ProposalStatus) (bool, error) {
	args := m.Called(ctx, p, expected)
	return args.Bool(0), args.Error(1)
}

func (m *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProposalRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	args := m.Called(ctx, sellerID, status, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Proposal), args.Get(1).(int64), args.Error(2)
}

func (m *ProposalRepository) ListAll(ctx context.Context, status *domain.ProposalStatus, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	args := m.Called(ctx, status, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Proposal), args.Get(1).(int64), args.Error(2)
}

func (m *ProposalRepository) ListApproved(ctx context.Context, params domain.PaginationParams) ([]domain.Proposal, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Proposal), args.Get(1).(int64), args.Error(2)
}
