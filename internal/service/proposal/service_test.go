package proposal_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealbridge/internal/domain"
	"dealbridge/internal/mocks"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/proposal"
)

func strPtr(s string) *string { return &s }

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProposalRepository)
	svc := proposal.NewService(repo, nil)

	sellerID := uuid.New()
	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Proposal) bool {
		return p.SellerID == sellerID && p.Status == domain.ProposalDraft
	})).Return(nil)

	p, err := svc.Create(ctx, sellerID, domain.CreateProposalInput{
		Title:           "Boutique hosting provider",
		BriefContent:    "brief",
		DetailedContent: "detailed",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProposalDraft, p.Status)
}

func TestUpdateProposal(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	owner := rules.Actor{ID: sellerID, Role: domain.RoleSeller}

	t.Run("owner edits a draft", func(t *testing.T) {
		repo := new(mocks.ProposalRepository)
		svc := proposal.NewService(repo, nil)
		p := &domain.Proposal{ID: uuid.New(), SellerID: sellerID, Title: "old", Status: domain.ProposalDraft}
		repo.On("GetByID", ctx, p.ID).Return(p, nil)
		repo.On("UpdateContent", ctx, mock.MatchedBy(func(got *domain.Proposal) bool {
			return got.Title == "new title"
		})).Return(nil)

		got, err := svc.Update(ctx, p.ID, owner, domain.UpdateProposalInput{Title: strPtr("new title")})

		require.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
	})

	t.Run("content is frozen after submit", func(t *testing.T) {
		repo := new(mocks.ProposalRepository)
		svc := proposal.NewService(repo, nil)
		p := &domain.Proposal{ID: uuid.New(), SellerID: sellerID, Status: domain.ProposalUnderReview}
		repo.On("GetByID", ctx, p.ID).Return(p, nil)

		_, err := svc.Update(ctx, p.ID, owner, domain.UpdateProposalInput{Title: strPtr("x")})

		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
		repo.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		repo := new(mocks.ProposalRepository)
		svc := proposal.NewService(repo, nil)
		p := &domain.Proposal{ID: uuid.New(), SellerID: sellerID, Status: domain.ProposalDraft}
		repo.On("GetByID", ctx, p.ID).Return(p, nil)

		other := rules.Actor{ID: uuid.New(), Role: domain.RoleSeller}
		_, err := svc.Update(ctx, p.ID, other, domain.UpdateProposalInput{Title: strPtr("x")})

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
	})

	t.Run("unknown proposal", func(t *testing.T) {
		repo := new(mocks.ProposalRepository)
		svc := proposal.NewService(repo, nil)
		id := uuid.New()
		repo.On("GetByID", ctx, id).Return(nil, nil)

		_, err := svc.Update(ctx, id, owner, domain.UpdateProposalInput{})

		assert.True(t, rules.IsKind(err, rules.KindNotFound))
	})
}

func TestListMine_ZeroParams(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProposalRepository)
	svc := proposal.NewService(repo, nil)

	sellerID := uuid.New()
	// Zero-value params are clamped to the defaults before the repo sees them.
	repo.On("ListBySeller", ctx, sellerID, (*domain.ProposalStatus)(nil), domain.DefaultPagination()).
		Return([]domain.Proposal{}, int64(0), nil)

	resp, err := svc.ListMine(ctx, sellerID, nil, domain.PaginationParams{})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, 0, resp.TotalPages)
}

func TestListApproved(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProposalRepository)
	svc := proposal.NewService(repo, nil)

	params := domain.DefaultPagination()
	rows := []domain.Proposal{
		{
			ID:              uuid.New(),
			SellerID:        uuid.New(),
			Title:           "Listed company",
			BriefContent:    "brief",
			DetailedContent: "detailed",
			Status:          domain.ProposalApproved,
		},
	}
	repo.On("ListApproved", ctx, params).Return(rows, int64(1), nil)

	resp, err := svc.ListApproved(ctx, params)

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	// The public listing carries the always-visible tier only.
	assert.Equal(t, "Listed company", resp.Data[0].Title)
	assert.Nil(t, resp.Data[0].DetailedContent)
	assert.Nil(t, resp.Data[0].RejectionReason)
}
