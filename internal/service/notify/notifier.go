package notify

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/config"
	"github.com/bharathsurabhi2-png/antitheft-sentry/internal/logger"
)

// fallbackMIMEType is used when the attachment extension is unknown.
const fallbackMIMEType = "application/octet-stream"

// Credentials identify the sender and recipient of intrusion mails.
type Credentials struct {
	// User is the sender address and SMTP login.
	User string
	// Pass is the SMTP app password.
	Pass string
	// To is the recipient; defaults to User when unset.
	To string
}

// CredentialsFromEnv reads the credential pair and recipient from the
// environment variables named in the configuration.
func CredentialsFromEnv(cfg *config.Config) Credentials {
	creds := Credentials{
		User: os.Getenv(cfg.EmailUserEnv),
		Pass: os.Getenv(cfg.EmailPassEnv),
		To:   os.Getenv(cfg.EmailToEnv),
	}

	if creds.To == "" {
		creds.To = creds.User
	}

	return creds
}

// complete reports whether sender identity, credential and recipient are
// all present.
func (c Credentials) complete() bool {
	return c.User != "" && c.Pass != "" && c.To != ""
}

// Notifier composes and sends intrusion emails subject to the cooldown.
// It is not safe for concurrent use; the synchronous pipeline is its only
// caller.
type Notifier struct {
	sender   Sender
	creds    Credentials
	cooldown time.Duration

	// lastAttempt is the process-wide cooldown timestamp. It advances on
	// every entry that passes the cooldown check, sent or not.
	lastAttempt time.Time

	// now is swappable for tests.
	now func() time.Time
}

// NewNotifier creates a notifier around the given transport.
func NewNotifier(sender Sender, creds Credentials, cooldown time.Duration) *Notifier {
	return &Notifier{
		sender:   sender,
		creds:    creds,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Notify sends the image to the configured recipient.
//
// A call inside the cooldown window is skipped silently (logged only), as
// is a call with incomplete credentials. The credential skip still
// consumes the cooldown window. Transmission failures propagate.
func (n *Notifier) Notify(ctx context.Context, imagePath, subject, body string) error {
	now := n.now()
	if now.Sub(n.lastAttempt) < n.cooldown {
		logger.InfoKV(ctx, "Email skipped (cooldown)", "image", imagePath)
		return nil
	}

	// Consumed before the credential check on purpose; see package doc.
	n.lastAttempt = now

	if !n.creds.complete() {
		logger.Warn(ctx, "Email credentials missing, skipping send")
		return nil
	}

	msg, err := n.compose(imagePath, subject, body)
	if err != nil {
		return err
	}

	if err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	logger.InfoKV(ctx, "Email sent", "to", n.creds.To, "image", imagePath)

	return nil
}

// compose builds the single-recipient message with the image attached.
func (n *Notifier) compose(imagePath, subject, body string) (*gomail.Message, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}

	ctype := mime.TypeByExtension(filepath.Ext(imagePath))
	if ctype == "" {
		ctype = fallbackMIMEType
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.creds.User)
	msg.SetHeader("To", n.creds.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(imagePath, gomail.SetHeader(map[string][]string{
		"Content-Type": {ctype},
	}))

	return msg, nil
}
