package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dealbridge/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) NotifyCaseReceived(ctx context.Context, caseID uuid.UUID) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

func (m *NotificationService) NotifyCaseInterest(ctx context.Context, caseID uuid.UUID) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

func (m *NotificationService) NotifyCaseDeclined(ctx context.Context, caseID uuid.UUID) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

func (m *NotificationService) NotifyNDASigned(ctx context.Context, caseID uuid.UUID) error {
	args := m.Called(ctx, caseID)
	return args.Error(0)
}

func (m *NotificationService) NotifyProposalReviewed(ctx context.Context, proposalID uuid.UUID, approved bool) error {
	args := m.Called(ctx, proposalID, approved)
	return args.Error(0)
}

func (m *NotificationService) NotifyNewComment(ctx context.Context, caseID, authorID uuid.UUID) error {
	args := m.Called(ctx, caseID, authorID)
	return args.Error(0)
}
