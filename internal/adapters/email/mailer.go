package email

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// SESConfig holds the AWS credentials and region for the SES provider.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// MailerConfig selects and configures the outgoing mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer builds a domain.Mailer for the configured provider. "ses" sends
// through AWS SES; anything else falls back to a sender that only logs, which
// keeps local development working without AWS credentials.
func NewMailer(cfg MailerConfig) (domain.Mailer, error) {
	switch cfg.Provider {
	case "ses":
		return &sesSender{
			client: ses.NewFromConfig(aws.Config{
				Region: cfg.SES.Region,
				Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
					cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, "",
				)),
			}),
			from:     cfg.FromAddress,
			fromName: cfg.FromName,
		}, nil
	case "noop", "":
		return &logSender{}, nil
	default:
		log.Printf("[MAILER] unknown provider %q, falling back to noop", cfg.Provider)
		return &logSender{}, nil
	}
}

type sesSender struct {
	client   *ses.Client
	from     string
	fromName string
}

func (s *sesSender) Send(to, subject, html, text string) error {
	source := s.from
	if s.fromName != "" {
		source = fmt.Sprintf("%s <%s>", s.fromName, s.from)
	}
	body := &types.Body{}
	if html != "" {
		body.Html = utf8Content(html)
	}
	if text != "" {
		body.Text = utf8Content(text)
	}
	result, err := s.client.SendEmail(context.Background(), &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: utf8Content(subject),
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	log.Printf("[MAILER] sent via SES, message id %s", aws.ToString(result.MessageId))
	return nil
}

func utf8Content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String("UTF-8")}
}

// logSender is used when no real provider is configured.
type logSender struct{}

func (l *logSender) Send(to, subject, html, text string) error {
	log.Printf("[MAILER] would send %q to %s (noop)", subject, to)
	return nil
}
