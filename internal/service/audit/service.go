package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
)

// RequestMeta carries the request attributes recorded alongside an entry.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// RecordInput describes one audited action. OldValue and NewValue are
// marshaled to JSON before persisting; nil values are stored as NULL.
type RecordInput struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
	Meta       *RequestMeta
}

type Service interface {
	Record(ctx context.Context, input RecordInput) error
	ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
	ListRecent(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error)
}

type service struct {
	auditRepo repository.AuditLogRepository
}

func NewService(auditRepo repository.AuditLogRepository) Service {
	return &service{auditRepo: auditRepo}
}

func (s *service) Record(ctx context.Context, input RecordInput) error {
	entry := &domain.AuditLog{
		ID:         uuid.New(),
		UserID:     input.UserID,
		Action:     input.Action,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
	}

	if input.OldValue != nil {
		if data, err := json.Marshal(input.OldValue); err == nil {
			entry.OldValue = data
		}
	}
	if input.NewValue != nil {
		if data, err := json.Marshal(input.NewValue); err == nil {
			entry.NewValue = data
		}
	}

	if input.Meta != nil {
		if input.Meta.IPAddress != "" {
			entry.IPAddress = &input.Meta.IPAddress
		}
		if input.Meta.UserAgent != "" {
			entry.UserAgent = &input.Meta.UserAgent
		}
	}

	return s.auditRepo.Create(ctx, entry)
}

func (s *service) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()
	entries, total, err := s.auditRepo.ListByEntity(ctx, entityType, entityID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(entries, params.Page, params.PageSize, total), nil
}

func (s *service) ListRecent(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.AuditLog], error) {
	params.Validate()
	entries, total, err := s.auditRepo.ListRecent(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.AuditLog]{}, err
	}

	return domain.NewPaginatedResponse(entries, params.Page, params.PageSize, total), nil
}
