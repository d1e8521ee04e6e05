package notify

import (
	"gopkg.in/gomail.v2"
)

// sslPort is the implicit-TLS SMTP port.
const sslPort = 465

// Sender transmits one composed message to the relay.
type Sender interface {
	Send(msg *gomail.Message) error
}

// SMTPSender dials the relay once per message, matching the one-connection-
// per-send contract, authenticating with the credential pair.
type SMTPSender struct {
	host string
	port int
	user string
	pass string
}

// NewSMTPSender creates the relay transport.
func NewSMTPSender(host string, port int, creds Credentials) *SMTPSender {
	return &SMTPSender{
		host: host,
		port: port,
		user: creds.User,
		pass: creds.Pass,
	}
}

// Send dials, authenticates, transmits, and closes the connection.
func (s *SMTPSender) Send(msg *gomail.Message) error {
	dialer := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	// Port 465 uses implicit TLS rather than STARTTLS.
	dialer.SSL = s.port == sslPort

	return dialer.DialAndSend(msg)
}
