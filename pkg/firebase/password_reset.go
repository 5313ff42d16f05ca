package firebase

import (
	"context"
	"fmt"

	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

const passwordResetRequest = "PASSWORD_RESET"

// PasswordResetMailer has Firebase Auth email a password reset link using the
// project's own email template.
type PasswordResetMailer struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

func NewPasswordResetMailer(ctx context.Context, opts ...option.ClientOption) (*PasswordResetMailer, error) {
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating identity toolkit client: %w", err)
	}
	return &PasswordResetMailer{relyingParty: svc.Relyingparty}, nil
}

// SendPasswordReset sends the reset email. Firebase rejects unknown addresses
// with EMAIL_NOT_FOUND.
func (m *PasswordResetMailer) SendPasswordReset(ctx context.Context, email string) error {
	_, err := m.relyingParty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		Kind:        "identitytoolkit#relyingparty",
		Email:       email,
		RequestType: passwordResetRequest,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	return nil
}

// PasswordResetMailer builds a mailer with the app's service account credentials.
func (a *App) PasswordResetMailer(ctx context.Context) (*PasswordResetMailer, error) {
	return NewPasswordResetMailer(ctx, a.clientOpts...)
}
