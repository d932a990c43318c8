package mail

import "context"

// Mailer delivers transactional mail. Delivery failures never block
// token issuance; callers log and move on.
type Mailer interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
}

// Noop is used when no mail backend is configured.
type Noop struct{}

func (Noop) SendPasswordReset(context.Context, string, string) error { return nil }
