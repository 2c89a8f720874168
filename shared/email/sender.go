package email

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"

	"github.com/rs/zerolog"

	"nba-dispatch/shared/config"
)

// Sender delivers a multipart/alternative message over SMTP. Clients that
// cannot render HTML fall back to the plain-text part.
type Sender struct {
	config *config.EmailConfig
	logger zerolog.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.EmailConfig, logger zerolog.Logger) *Sender {
	return &Sender{
		config: cfg,
		logger: logger.With().Str("component", "email").Logger(),
		send:   smtp.SendMail,
	}
}

// Send delivers one message with both HTML and plain-text bodies.
func (s *Sender) Send(subject, htmlBody, textBody string) error {
	msg, err := s.buildMessage(subject, htmlBody, textBody)
	if err != nil {
		return fmt.Errorf("failed to build email message: %w", err)
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)
	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)

	s.logger.Info().Str("to", s.config.ToEmail).Str("subject", subject).Msg("sending email")
	if err := s.send(addr, auth, s.config.FromEmail, []string{s.config.ToEmail}, msg); err != nil {
		return fmt.Errorf("smtp delivery to %s failed: %w", s.config.ToEmail, err)
	}
	s.logger.Info().Str("to", s.config.ToEmail).Msg("email sent")
	return nil
}

func (s *Sender) buildMessage(subject, htmlBody, textBody string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	// Plain text first: clients pick the last part they can render.
	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(textBody)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", s.config.ToEmail)
	fmt.Fprintf(&msg, "From: %s\r\n", s.config.FromEmail)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
