// Package mailer composes and sends the random-verse email.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/config"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
)

// ErrMissingCredentials is returned by Send when no SMTP username or password
// is configured.
var ErrMissingCredentials = errors.New("mailer: smtp username and password are required")

const (
	idDomain    = "scriptorium"
	userAgent   = "scriptorium"
	sendTimeout = 30 * time.Second
)

// For testing.
var (
	newID   = uuid.NewString
	sendMsg = func(ctx context.Context, c *gomail.Client, msg *gomail.Msg) error {
		return c.DialAndSendWithContext(ctx, msg)
	}
)

// Message is a composed email.
type Message struct {
	ID      string
	From    *mail.Address
	To      *mail.Address
	Subject string
	Date    time.Time
	HTML    string

	msg *gomail.Msg
}

// Subject returns the subject line for the email sent at now.
func Subject(now time.Time) string {
	return "Random verse for " + now.Format("Monday, January 2")
}

// Compose builds the email carrying verse. From and To are parsed as RFC 5322
// addresses.
func Compose(cfg config.MailConfig, verse corpus.VerseWithReference, now time.Time) (*Message, error) {
	from, err := mail.ParseAddress(cfg.From)
	if err != nil {
		return nil, fmt.Errorf("mail.from: %w", err)
	}
	to, err := mail.ParseAddress(cfg.To)
	if err != nil {
		return nil, fmt.Errorf("mail.to: %w", err)
	}

	id := newID() + "@" + idDomain
	m := &Message{
		ID:      "<" + id + ">",
		From:    from,
		To:      to,
		Subject: Subject(now),
		Date:    now,
		HTML:    verse.HTML(),
		msg:     gomail.NewMsg(gomail.WithCharset(gomail.CharsetUTF8), gomail.WithEncoding(gomail.NoEncoding)),
	}
	if err := m.msg.From(from.String()); err != nil {
		return nil, fmt.Errorf("mail.from: %w", err)
	}
	if err := m.msg.To(to.String()); err != nil {
		return nil, fmt.Errorf("mail.to: %w", err)
	}
	m.msg.Subject(m.Subject)
	m.msg.SetDateWithValue(now)
	m.msg.SetMessageIDWithValue(id)
	m.msg.SetUserAgent(userAgent)
	m.msg.SetBodyString(gomail.TypeTextHTML, m.HTML)
	return m, nil
}

// WriteTo renders the message in wire format.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	return m.msg.WriteTo(w)
}

// Mailer delivers messages through one SMTP server.
type Mailer struct {
	cfg config.MailConfig
}

// New creates a Mailer for cfg.
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) client() (*gomail.Client, error) {
	return gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTLSConfig(&tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}),
		gomail.WithTimeout(sendTimeout),
	)
}

// Send delivers msg over STARTTLS using PLAIN authentication.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		return ErrMissingCredentials
	}
	if m.cfg.Host == "" {
		return errors.New("mailer: smtp host is required")
	}

	c, err := m.client()
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	start := time.Now()
	if err := sendMsg(ctx, c, msg.msg); err != nil {
		logging.Error("mail send failed", "message_id", msg.ID, "error", err)
		return fmt.Errorf("send mail via %s: %w", m.cfg.Addr(), err)
	}
	logging.MailEvent("sent", msg.ID, "to", msg.To.Address, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
