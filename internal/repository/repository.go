package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Proposal     ProposalRepository
	Case         CaseRepository
	Comment      CommentRepository
	Attachment   AttachmentRepository
	Notification NotificationRepository
	AuditLog     AuditLogRepository
	Session      SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Proposal:     NewProposalRepository(db),
		Case:         NewCaseRepository(db),
		Comment:      NewCommentRepository(db),
		Attachment:   NewAttachmentRepository(db),
		Notification: NewNotificationRepository(db),
		AuditLog:     NewAuditLogRepository(db),
		Session:      NewSessionRepository(db),
	}
}
