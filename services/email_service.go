package services

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Bounded per-send timeout so one unresponsive provider call cannot
// stall a whole notification batch.
const sendTimeout = 15 * time.Second

// EmailSender delivers transactional membership-expiry emails. The
// provider renders the template identified by templateID with the
// NAME and EXPIRY_DATE params.
type EmailSender interface {
	// Configured reports whether the provider credential is present.
	// A missing credential is a fatal precondition for a whole
	// notification run, checked once before any send.
	Configured() bool
	SendExpiryEmail(toEmail, toName string, templateID int, expiryDate string) error
}

type EmailService struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Library Admin"
	}

	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *EmailService) Configured() bool {
	return s.apiKey != ""
}

// SendExpiryEmail sends the expiry-reminder template to one student.
func (s *EmailService) SendExpiryEmail(toEmail, toName string, templateID int, expiryDate string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.SetTemplateID(strconv.Itoa(templateID))

	p := mail.NewPersonalization()
	p.AddTos(to)
	p.SetDynamicTemplateData("NAME", toName)
	p.SetDynamicTemplateData("EXPIRY_DATE", expiryDate)
	message.AddPersonalizations(p)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", toEmail, response.StatusCode)
	}
	return nil
}
