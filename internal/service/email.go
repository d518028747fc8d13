package service

import (
	"context"
	"fmt"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// invitationSubjects are fixed per invitation type.
var invitationSubjects = map[domain.InvitationType]string{
	domain.InvitationTypeCreateAcademy: "You have been invited to set up your academy",
	domain.InvitationTypeBatchCoach:    "You have been invited to coach a batch",
	domain.InvitationTypeBatchStudent:  "You have been invited to join a batch",
}

type sendgridEmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridEmailService) SendInvitation(ctx context.Context, invType domain.InvitationType, email, name, tempPassword, activationLink string) error {
	subject, ok := invitationSubjects[invType]
	if !ok {
		subject = "You have been invited"
	}

	plain := fmt.Sprintf(
		"Hello %s,\n\nAn account has been prepared for you.\n\nTemporary password: %s\n\nActivate your account within 72 hours:\n%s\n\nIf you were not expecting this invitation you can ignore this email.",
		name, tempPassword, activationLink,
	)
	html := fmt.Sprintf(
		`<p>Hello %s,</p><p>An account has been prepared for you.</p><p>Temporary password: <strong>%s</strong></p><p><a href="%s">Activate your account</a> within 72 hours.</p><p>If you were not expecting this invitation you can ignore this email.</p>`,
		name, tempPassword, activationLink,
	)
	return s.send(email, name, subject, plain, html)
}

func (s *sendgridEmailService) SendPasswordReset(ctx context.Context, email, name, resetLink string) error {
	plain := fmt.Sprintf("Hello %s,\n\nReset your password using the link below:\n%s\n\nIf you did not request a reset you can ignore this email.", name, resetLink)
	html := fmt.Sprintf(`<p>Hello %s,</p><p><a href="%s">Reset your password</a>.</p><p>If you did not request a reset you can ignore this email.</p>`, name, resetLink)
	return s.send(email, name, "Reset your password", plain, html)
}

func (s *sendgridEmailService) SendNotification(ctx context.Context, email, subject, body string) error {
	return s.send(email, "", subject, body, fmt.Sprintf("<p>%s</p>", body))
}

func (s *sendgridEmailService) send(to, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)
	// Batch id doubles as an idempotency handle when resends are retried.
	message.SetBatchID(uuid.NewString())

	response, err := s.client.Send(message)
	if err != nil {
		return domain.Wrap(domain.CodeMailError, "failed to send email", err)
	}
	if response.StatusCode >= 400 {
		logger.Error("sendgrid rejected message", "status", response.StatusCode, "body", response.Body)
		return domain.E(domain.CodeMailError, fmt.Sprintf("mail transport returned status %d", response.StatusCode))
	}
	return nil
}
