package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"billdesk/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendApprovalNotice(ctx context.Context, toEmail, toName, itemTitle string) error {
	subject := fmt.Sprintf("Approved: %s", itemTitle)
	htmlBody := buildApprovalHTML(toName, itemTitle)
	textBody := fmt.Sprintf("Hi %s,\n\n%q has been approved and is now visible in your dashboard.\n\nBilldesk Team", toName, itemTitle)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendRejectionNotice(ctx context.Context, toEmail, toName, itemTitle, reason string) error {
	subject := fmt.Sprintf("Rejected: %s", itemTitle)
	htmlBody := buildRejectionHTML(toName, itemTitle, reason)
	textBody := fmt.Sprintf("Hi %s,\n\n%q was rejected.\n\nReason: %s\n\nBilldesk Team", toName, itemTitle, reason)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
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

func buildApprovalHTML(name, itemTitle string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Approved</h2>
  <p>Hi %s,</p>
  <p><strong>%s</strong> has been approved and is now visible in your dashboard.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Billdesk - Bill &amp; Report Management</p>
</body>
</html>`, name, itemTitle)
}

func buildRejectionHTML(name, itemTitle, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Rejected</h2>
  <p>Hi %s,</p>
  <p><strong>%s</strong> was rejected.</p>
  <p>Reason: %s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Billdesk - Bill &amp; Report Management</p>
</body>
</html>`, name, itemTitle, reason)
}
