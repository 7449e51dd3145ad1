package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	args := m.Called(ctx, toEmail, fullName)
	return args.Error(0)
}

func (m *EmailService) SendProposalReviewedEmail(ctx context.Context, toEmail, fullName, proposalTitle string, approved bool, reason string) error {
	args := m.Called(ctx, toEmail, fullName, proposalTitle, approved, reason)
	return args.Error(0)
}

func (m *EmailService) SendCaseReceivedEmail(ctx context.Context, toEmail, buyerName, proposalTitle string) error {
	args := m.Called(ctx, toEmail, buyerName, proposalTitle)
	return args.Error(0)
}

func (m *EmailService) SendNDASignedEmail(ctx context.Context, toEmail, recipientName, proposalTitle string) error {
	args := m.Called(ctx, toEmail, recipientName, proposalTitle)
	return args.Error(0)
}

func (m *EmailService) SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, proposalTitle string) error {
	args := m.Called(ctx, toEmail, recipientName, authorName, proposalTitle)
	return args.Error(0)
}
