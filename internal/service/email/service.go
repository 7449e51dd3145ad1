package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/resend/resend-go/v2"

	"dealbridge/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendProposalReviewedEmail(ctx context.Context, toEmail, fullName, proposalTitle string, approved bool, reason string) error
	SendCaseReceivedEmail(ctx context.Context, toEmail, buyerName, proposalTitle string) error
	SendNDASignedEmail(ctx context.Context, toEmail, recipientName, proposalTitle string) error
	SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, proposalTitle string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("DealBridge <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to DealBridge",
		Name:  fullName,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to DealBridge", "welcome.html", data)
}

func (s *service) SendProposalReviewedEmail(ctx context.Context, toEmail, fullName, proposalTitle string, approved bool, reason string) error {
	status := "Approved"
	color := "#10b981"
	if !approved {
		status = "Rejected"
		color = "#ef4444"
	}

	data := struct {
		Title         string
		Name          string
		ProposalTitle string
		Status        string
		Reason        string
		Color         string
	}{
		Title:         fmt.Sprintf("Proposal %s", status),
		Name:          fullName,
		ProposalTitle: proposalTitle,
		Status:        status,
		Reason:        reason,
		Color:         color,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Your proposal has been %s - DealBridge", status), "proposal_reviewed.html", data)
}

func (s *service) SendCaseReceivedEmail(ctx context.Context, toEmail, buyerName, proposalTitle string) error {
	data := struct {
		Title         string
		Name          string
		ProposalTitle string
		Link          string
	}{
		Title:         "New Acquisition Opportunity",
		Name:          buyerName,
		ProposalTitle: proposalTitle,
		Link:          fmt.Sprintf("https://%s/cases", s.config.Domain),
	}
	return s.sendEmail(toEmail, "New Acquisition Opportunity - DealBridge", "case_received.html", data)
}

func (s *service) SendNDASignedEmail(ctx context.Context, toEmail, recipientName, proposalTitle string) error {
	data := struct {
		Title         string
		Name          string
		ProposalTitle string
	}{
		Title:         "NDA Signed",
		Name:          recipientName,
		ProposalTitle: proposalTitle,
	}
	return s.sendEmail(toEmail, "NDA Signed - DealBridge", "nda_signed.html", data)
}

func (s *service) SendNewCommentEmail(ctx context.Context, toEmail, recipientName, authorName, proposalTitle string) error {
	data := struct {
		Title         string
		Name          string
		AuthorName    string
		ProposalTitle string
	}{
		Title:         "New Message",
		Name:          recipientName,
		AuthorName:    authorName,
		ProposalTitle: proposalTitle,
	}
	return s.sendEmail(toEmail, fmt.Sprintf("New message on %s - DealBridge", proposalTitle), "new_comment.html", data)
}
