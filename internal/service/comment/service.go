package comment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
	"dealbridge/internal/service/notification"
)

const (
	listCacheTTL = 5 * time.Minute

	// maxContentRunes is a character limit, not a byte limit.
	maxContentRunes = 1000
)

type Service interface {
	Create(ctx context.Context, caseID, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	ListByCase(ctx context.Context, caseID uuid.UUID, actor rules.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error)
}

type service struct {
	commentRepo repository.CommentRepository
	caseRepo    repository.CaseRepository
	redis       *redis.Client
	notifSvc    notification.Service
}

func NewService(commentRepo repository.CommentRepository, caseRepo repository.CaseRepository, redisClient *redis.Client, notifSvc notification.Service) Service {
	return &service{
		commentRepo: commentRepo,
		caseRepo:    caseRepo,
		redis:       redisClient,
		notifSvc:    notifSvc,
	}
}

// Create posts a message on a case. Only the two parties may write, and a
// cancelled case is closed for new messages.
func (s *service) Create(ctx context.Context, caseID, authorID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, rules.NotFound("case not found")
	}

	if authorID != c.SellerID && authorID != c.BuyerID {
		return nil, rules.Forbidden("only the parties of the case may post messages")
	}

	if c.Status == domain.CaseCancelled {
		return nil, rules.InvalidTransition("cannot post messages on a cancelled case")
	}

	if input.Content == "" || utf8.RuneCountInString(input.Content) > maxContentRunes {
		return nil, rules.Invalid("content must be between 1 and 1000 characters")
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		CaseID:   caseID,
		AuthorID: authorID,
		Content:  input.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.IsSeller = authorID == c.SellerID

	s.invalidateCache(ctx, caseID)

	if s.notifSvc != nil {
		go func(caseID, authorID uuid.UUID) {
			_ = s.notifSvc.NotifyNewComment(context.Background(), caseID, authorID)
		}(caseID, authorID)
	}

	return comment, nil
}

// ListByCase returns the case's messages, newest first. Parties see their own
// conversation; admins can read it for dispute handling.
func (s *service) ListByCase(ctx context.Context, caseID uuid.UUID, actor rules.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.Comment], error) {
	c, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}
	if c == nil {
		return domain.PaginatedResponse[domain.Comment]{}, rules.NotFound("case not found")
	}

	if actor.ID != c.SellerID && actor.ID != c.BuyerID && actor.Role != domain.RoleAdmin {
		return domain.PaginatedResponse[domain.Comment]{}, rules.Forbidden("you are not a party to this case")
	}

	params.Validate()
	cacheKey := fmt.Sprintf("comments:case:%s:%d:%d", caseID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var resp domain.PaginatedResponse[domain.Comment]
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	comments, total, err := s.commentRepo.ListByCase(ctx, caseID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Comment]{}, err
	}

	for i := range comments {
		comments[i].IsSeller = comments[i].AuthorID == c.SellerID
	}

	resp := domain.NewPaginatedResponse(comments, params.Page, params.PageSize, total)

	if s.redis != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.redis.Set(ctx, cacheKey, data, listCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *service) invalidateCache(ctx context.Context, caseID uuid.UUID) {
	if s.redis == nil {
		return
	}

	pattern := fmt.Sprintf("comments:case:%s:*", caseID)
	keys, err := s.redis.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = s.redis.Del(ctx, keys...).Err()
}
