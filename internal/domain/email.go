package domain

import "context"

// Mailer sends an email with optional HTML and text bodies.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// RegistrationEmailData carries the fields rendered into a registration
// confirmation email.
type RegistrationEmailData struct {
	To        string
	EventName string
	EventDate string
}

// EmailService sends domain emails. Implementations render templates and
// delegate to a Mailer.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
}
