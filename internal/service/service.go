package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"dealbridge/internal/config"
	"dealbridge/internal/repository"
	"dealbridge/internal/service/attachment"
	"dealbridge/internal/service/audit"
	"dealbridge/internal/service/auth"
	"dealbridge/internal/service/cases"
	"dealbridge/internal/service/comment"
	"dealbridge/internal/service/email"
	"dealbridge/internal/service/lifecycle"
	"dealbridge/internal/service/notification"
	"dealbridge/internal/service/proposal"
	"dealbridge/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Proposal     proposal.Service
	Case         cases.Service
	Lifecycle    lifecycle.Service
	Comment      comment.Service
	Attachment   attachment.Service
	Email        email.Service
	Audit        audit.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	auditService := audit.NewService(repos.AuditLog)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.Proposal, repos.Case, emailService)

	lifecycleService := lifecycle.NewService(repos.Proposal, repos.Case, repos.User, auditService, notificationService, redisClient)
	proposalService := proposal.NewService(repos.Proposal, redisClient)
	caseService := cases.NewService(repos.Case, repos.Proposal, repos.User, auditService, notificationService)

	commentService := comment.NewService(repos.Comment, repos.Case, redisClient, notificationService)

	attachmentService := attachment.NewService(repos.Attachment, repos.Proposal, repos.Case, minioClient, cfg)
	userService := user.NewService(repos.User)

	return &Services{
		Auth:         authService,
		User:         userService,
		Proposal:     proposalService,
		Case:         caseService,
		Lifecycle:    lifecycleService,
		Comment:      commentService,
		Attachment:   attachmentService,
		Email:        emailService,
		Audit:        auditService,
		Notification: notificationService,
	}
}
