package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"medibill/internal/config"
	"medibill/internal/domain"
	"medibill/internal/port"
)

// emailAPI is the subset of the SES client the notifier calls.
type emailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client     emailAPI
	from       string
	recipients []string
}

// NewSESNotifier creates a Notifier that emails billing notices to the
// configured operations recipients.
func NewSESNotifier(cfg *config.NotifyConfig) (port.Notifier, error) {
	if len(cfg.Recipients) == 0 {
		return nil, fmt.Errorf("notify.recipients is required for the ses provider")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSESNotifier(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSESNotifier(client emailAPI, cfg *config.NotifyConfig) *sesNotifier {
	return &sesNotifier{
		client:     client,
		from:       fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		recipients: cfg.Recipients,
	}
}

func (s *sesNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	subject := fmt.Sprintf("[MediBill] %s: %s", strings.ToUpper(string(notice.Level)), notice.Code)
	textBody := fmt.Sprintf("%s\n\nCode: %s\n\nMediBill Billing", notice.Message, notice.Code)
	htmlBody := buildNoticeHTML(notice)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &s.from,
		Destination: &types.Destination{
			ToAddresses: s.recipients,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildNoticeHTML(notice domain.Notice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Billing notice</h2>
  <p>%s</p>
  <p style="color: #666;">Code: <code>%s</code></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">MediBill - Clinic Billing</p>
</body>
</html>`, html.EscapeString(notice.Message), html.EscapeString(notice.Code))
}
