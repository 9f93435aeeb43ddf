package services

import (
	"context"
	"fmt"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type emailService struct {
	mailer        domain.Mailer
	notifyAddress string
}

// NewEmailService creates an EmailService that sends registration
// confirmations to the foundation's notification address via the Mailer.
func NewEmailService(mailer domain.Mailer, notifyAddress string) domain.EmailService {
	return &emailService{mailer: mailer, notifyAddress: notifyAddress}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	to := data.To
	if to == "" {
		to = s.notifyAddress
	}
	if to == "" {
		return nil
	}
	subject := fmt.Sprintf("New registrations for %s", data.EventName)
	text := fmt.Sprintf("Registrations were recorded for %s (%s).", data.EventName, data.EventDate)
	html := fmt.Sprintf("<p>Registrations were recorded for <strong>%s</strong> (%s).</p>", data.EventName, data.EventDate)
	if err := s.mailer.Send(to, subject, html, text); err != nil {
		return fmt.Errorf("send registration confirmation: %w", err)
	}
	return nil
}
