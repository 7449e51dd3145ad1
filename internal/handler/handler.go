package handler

import "dealbridge/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Proposal     *ProposalHandler
	Case         *CaseHandler
	Comment      *CommentHandler
	Attachment   *AttachmentHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Proposal:     NewProposalHandler(services.Proposal, services.Lifecycle),
		Case:         NewCaseHandler(services.Case, services.Lifecycle),
		Comment:      NewCommentHandler(services.Comment),
		Attachment:   NewAttachmentHandler(services.Attachment),
		Notification: NewNotificationHandler(services.Notification),
		Audit:        NewAuditHandler(services.Audit),
	}
}
