package facades

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/taskboard/internal/logger"
	"github.com/sbilibin2017/taskboard/internal/models"
	"gopkg.in/gomail.v2"
)

// MailDialer sends messages over SMTP. *gomail.Dialer implements it.
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// RecoveryMailFacade delivers password recovery tokens by email.
type RecoveryMailFacade struct {
	dialer MailDialer
	from   string
}

// NewRecoveryMailFacade creates a facade sending from the given address.
// A nil dialer or empty sender leaves the facade unconfigured.
func NewRecoveryMailFacade(dialer MailDialer, from string) *RecoveryMailFacade {
	return &RecoveryMailFacade{dialer: dialer, from: from}
}

// NewSMTPDialer returns nil when host is empty.
func NewSMTPDialer(host string, port int, user, pass string) MailDialer {
	if host == "" {
		return nil
	}
	return gomail.NewDialer(host, port, user, pass)
}

// SendRecovery mails the token to the account address. It returns
// false, nil when SMTP is not configured.
func (f *RecoveryMailFacade) SendRecovery(ctx context.Context, user *models.User, rec *models.PasswordRecovery) (bool, error) {
	if f == nil || f.dialer == nil || f.from == "" {
		logger.Log.Warnw("smtp not configured, recovery token not mailed", "user_id", user.ID)
		return false, nil
	}
	if strings.TrimSpace(rec.Email) == "" {
		return false, fmt.Errorf("send recovery mail: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", f.from)
	m.SetHeader("To", rec.Email)
	m.SetHeader("Subject", "[Taskboard] Password recovery")
	m.SetBody("text/plain", recoveryBody(user.Username, rec.Token))

	if err := f.dialer.DialAndSend(m); err != nil {
		logger.Log.Errorw("failed to send recovery mail", "user_id", user.ID, "error", err)
		return false, fmt.Errorf("send recovery mail: %w", err)
	}

	logger.Log.Infow("recovery mail sent", "user_id", user.ID, "recovery_id", rec.ID)
	return true, nil
}

func recoveryBody(username, token string) string {
	ttl := int(models.RecoveryTokenTTL / time.Minute)
	return fmt.Sprintf(`Hello %s,

a password reset was requested for your Taskboard account.
Use this recovery token within %d minutes:

    %s

If you did not ask for a reset you can ignore this message.
`, username, ttl, token)
}
