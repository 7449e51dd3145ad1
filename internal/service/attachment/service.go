package attachment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"dealbridge/internal/config"
	"dealbridge/internal/domain"
	"dealbridge/internal/repository"
	"dealbridge/internal/rules"
)

// presignedExpiry bounds how long a download link stays usable. Attachments
// sit behind the NDA gate, so links must not be shareable indefinitely.
const presignedExpiry = 15 * time.Minute

const maxFileSize = 50 << 20 // 50 MiB

type Service interface {
	Upload(ctx context.Context, proposalID uuid.UUID, actor rules.Actor, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error)
	List(ctx context.Context, proposalID uuid.UUID, actor rules.Actor) ([]domain.Attachment, error)
	DownloadURL(ctx context.Context, attachmentID uuid.UUID, actor rules.Actor) (string, error)
	Delete(ctx context.Context, attachmentID uuid.UUID, actor rules.Actor) error
}

type service struct {
	attachmentRepo repository.AttachmentRepository
	proposalRepo   repository.ProposalRepository
	caseRepo       repository.CaseRepository
	minioClient    *minio.Client
	cfg            *config.Config
}

func NewService(
	attachmentRepo repository.AttachmentRepository,
	proposalRepo repository.ProposalRepository,
	caseRepo repository.CaseRepository,
	minioClient *minio.Client,
	cfg *config.Config,
) Service {
	return &service{
		attachmentRepo: attachmentRepo,
		proposalRepo:   proposalRepo,
		caseRepo:       caseRepo,
		minioClient:    minioClient,
		cfg:            cfg,
	}
}

// Upload stores a document on the proposal. Only the owning seller may
// upload, and only while the proposal is still a draft.
func (s *service) Upload(ctx context.Context, proposalID uuid.UUID, actor rules.Actor, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error) {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	if p.SellerID != actor.ID {
		return nil, rules.Forbidden("only the owning seller may upload attachments")
	}

	if p.Status != domain.ProposalDraft {
		return nil, rules.InvalidTransition(fmt.Sprintf("attachments cannot be added in status %q", p.Status))
	}

	if fileSize <= 0 || fileSize > maxFileSize {
		return nil, rules.Invalid("file size must be between 1 byte and 50 MiB")
	}

	attachmentID := uuid.New()
	storagePath := fmt.Sprintf("proposals/%s/%s", proposalID, attachmentID)

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	a := &domain.Attachment{
		ID:          attachmentID,
		ProposalID:  proposalID,
		UploadedBy:  actor.ID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.attachmentRepo.Create(ctx, a); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	return a, nil
}

// List returns the proposal's attachments to viewers entitled to its
// detailed content.
func (s *service) List(ctx context.Context, proposalID uuid.UUID, actor rules.Actor) ([]domain.Attachment, error) {
	p, err := s.proposalRepo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, rules.NotFound("proposal not found")
	}

	if err := s.checkDetailAccess(ctx, p, actor); err != nil {
		return nil, err
	}

	return s.attachmentRepo.ListByProposal(ctx, proposalID)
}

// DownloadURL returns a short-lived presigned link for one attachment,
// subject to the same gating as the proposal's detailed content.
func (s *service) DownloadURL(ctx context.Context, attachmentID uuid.UUID, actor rules.Actor) (string, error) {
	a, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", rules.NotFound("attachment not found")
	}

	p, err := s.proposalRepo.GetByID(ctx, a.ProposalID)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", rules.NotFound("proposal not found")
	}

	if err := s.checkDetailAccess(ctx, p, actor); err != nil {
		return "", err
	}

	reqParams := make(map[string][]string)
	reqParams["response-content-disposition"] = []string{fmt.Sprintf("attachment; filename=%q", a.FileName)}

	u, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, a.StoragePath, presignedExpiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to presign download URL: %w", err)
	}

	return u.String(), nil
}

func (s *service) Delete(ctx context.Context, attachmentID uuid.UUID, actor rules.Actor) error {
	a, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return rules.NotFound("attachment not found")
	}

	p, err := s.proposalRepo.GetByID(ctx, a.ProposalID)
	if err != nil {
		return err
	}
	if p == nil {
		return rules.NotFound("proposal not found")
	}

	if p.SellerID != actor.ID {
		return rules.Forbidden("only the owning seller may delete attachments")
	}

	if p.Status != domain.ProposalDraft {
		return rules.InvalidTransition(fmt.Sprintf("attachments cannot be removed in status %q", p.Status))
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return err
	}

	_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, a.StoragePath, minio.RemoveObjectOptions{})
	return nil
}

// checkDetailAccess mirrors the proposal detailed-content rule: owner and
// admin always, a buyer only through a case past the NDA gate.
func (s *service) checkDetailAccess(ctx context.Context, p *domain.Proposal, actor rules.Actor) error {
	if actor.ID == p.SellerID || actor.Role == domain.RoleAdmin {
		return nil
	}

	c, err := s.caseRepo.GetByProposalAndBuyer(ctx, p.ID, actor.ID)
	if err != nil {
		return err
	}
	if c == nil || !rules.ContentUnlocked(c.Status) {
		return rules.Forbidden("attachments are not available before the NDA is signed")
	}

	return nil
}
