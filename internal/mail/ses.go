package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer sends mail through Amazon SES v2.
type SESMailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

func NewSESMailer(ctx context.Context, region, fromEmail, fromName string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &SESMailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (m *SESMailer) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	subject := "Password Reset Request - PlanVenture"
	htmlBody := fmt.Sprintf(`<html>
<body>
  <h2>Password Reset Request</h2>
  <p>You requested to reset your password.</p>
  <p>Click the following link to reset your password:</p>
  <p><a href="%[1]s">%[1]s</a></p>
  <p>This link will expire in 1 hour.</p>
  <p>If you did not request this reset, please ignore this email.</p>
  <br>
  <p>Best regards,<br>%[2]s Team</p>
</body>
</html>`, resetLink, m.fromName)
	textBody := fmt.Sprintf(
		"You requested to reset your password.\n\n"+
			"Open the following link to reset it:\n%s\n\n"+
			"This link will expire in 1 hour.\n"+
			"If you did not request this reset, please ignore this email.\n",
		resetLink,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
