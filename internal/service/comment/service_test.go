package comment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealbridge/internal/domain"
	"dealbridge/internal/mocks"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/comment"
)

type commentFixture struct {
	commentRepo *mocks.CommentRepository
	caseRepo    *mocks.CaseRepository
	notifSvc    *mocks.NotificationService
	svc         comment.Service
}

func newCommentFixture() *commentFixture {
	f := &commentFixture{
		commentRepo: new(mocks.CommentRepository),
		caseRepo:    new(mocks.CaseRepository),
		notifSvc:    new(mocks.NotificationService),
	}
	f.svc = comment.NewService(f.commentRepo, f.caseRepo, nil, f.notifSvc)

	f.notifSvc.On("NotifyNewComment", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	return f
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	buyerID := uuid.New()
	c := &domain.Case{ID: uuid.New(), SellerID: sellerID, BuyerID: buyerID, Status: domain.CaseInterested}
	input := domain.CreateCommentInput{Content: "can you share last year's revenue?"}

	t.Run("buyer posts a message", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)
		f.commentRepo.On("Create", ctx, mock.MatchedBy(func(got *domain.Comment) bool {
			return got.CaseID == c.ID && got.AuthorID == buyerID && got.Content == input.Content
		})).Return(nil)

		got, err := f.svc.Create(ctx, c.ID, buyerID, input)

		require.NoError(t, err)
		assert.False(t, got.IsSeller)
	})

	t.Run("seller message is flagged as seller", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)
		f.commentRepo.On("Create", ctx, mock.Anything).Return(nil)

		got, err := f.svc.Create(ctx, c.ID, sellerID, input)

		require.NoError(t, err)
		assert.True(t, got.IsSeller)
	})

	t.Run("outsider cannot post", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)

		_, err := f.svc.Create(ctx, c.ID, uuid.New(), input)

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
		f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("limit counts characters, not bytes", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)
		f.commentRepo.On("Create", ctx, mock.Anything).Return(nil)

		// 1000 three-byte runes are within the limit even though the string
		// is 3000 bytes long.
		atLimit := strings.Repeat("見", 1000)
		_, err := f.svc.Create(ctx, c.ID, buyerID, domain.CreateCommentInput{Content: atLimit})
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, c.ID, buyerID, domain.CreateCommentInput{Content: atLimit + "見"})
		assert.True(t, rules.IsKind(err, rules.KindValidation))
	})

	t.Run("empty content is refused", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)

		_, err := f.svc.Create(ctx, c.ID, buyerID, domain.CreateCommentInput{Content: ""})

		assert.True(t, rules.IsKind(err, rules.KindValidation))
		f.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("cancelled case is closed", func(t *testing.T) {
		f := newCommentFixture()
		cancelled := &domain.Case{ID: uuid.New(), SellerID: sellerID, BuyerID: buyerID, Status: domain.CaseCancelled}
		f.caseRepo.On("GetByID", ctx, cancelled.ID).Return(cancelled, nil)

		_, err := f.svc.Create(ctx, cancelled.ID, buyerID, input)

		assert.True(t, rules.IsKind(err, rules.KindInvalidTransition))
	})

	t.Run("unknown case", func(t *testing.T) {
		f := newCommentFixture()
		id := uuid.New()
		f.caseRepo.On("GetByID", ctx, id).Return(nil, nil)

		_, err := f.svc.Create(ctx, id, buyerID, input)

		assert.True(t, rules.IsKind(err, rules.KindNotFound))
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	sellerID := uuid.New()
	buyerID := uuid.New()
	c := &domain.Case{ID: uuid.New(), SellerID: sellerID, BuyerID: buyerID, Status: domain.CaseNDASigned}
	params := domain.DefaultPagination()

	rows := []domain.Comment{
		{ID: uuid.New(), CaseID: c.ID, AuthorID: sellerID, Content: "financials uploaded"},
		{ID: uuid.New(), CaseID: c.ID, AuthorID: buyerID, Content: "thanks, reviewing"},
	}

	t.Run("party reads the thread", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)
		f.commentRepo.On("ListByCase", ctx, c.ID, params).Return(rows, int64(2), nil)

		resp, err := f.svc.ListByCase(ctx, c.ID, rules.Actor{ID: buyerID, Role: domain.RoleBuyer}, params)

		require.NoError(t, err)
		require.Len(t, resp.Data, 2)
		assert.True(t, resp.Data[0].IsSeller)
		assert.False(t, resp.Data[1].IsSeller)
		assert.Equal(t, int64(2), resp.TotalItems)
	})

	t.Run("admin reads the thread", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)
		f.commentRepo.On("ListByCase", ctx, c.ID, params).Return([]domain.Comment{}, int64(0), nil)

		_, err := f.svc.ListByCase(ctx, c.ID, rules.Actor{ID: uuid.New(), Role: domain.RoleAdmin}, params)

		assert.NoError(t, err)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		f := newCommentFixture()
		f.caseRepo.On("GetByID", ctx, c.ID).Return(c, nil)

		_, err := f.svc.ListByCase(ctx, c.ID, rules.Actor{ID: uuid.New(), Role: domain.RoleBuyer}, params)

		assert.True(t, rules.IsKind(err, rules.KindForbidden))
		f.commentRepo.AssertNotCalled(t, "ListByCase", mock.Anything, mock.Anything, mock.Anything)
	})
}
