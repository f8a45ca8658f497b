package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/BuildLoopLLC/clearview-core/internal/config"
	"go.uber.org/zap"
)

// Message is a single email to send.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers notification emails over SMTP. Delivery is best-effort:
// SendAsync logs failures and never propagates them to the caller, so a
// committed write (subscriber row, contact submission) is never rolled
// back because the notification bounced.
type Sender struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

func New(cfg config.SMTPConfig, log *zap.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

// Send dispatches an email synchronously.
func (s *Sender) Send(msg Message) error {
	if !s.cfg.Enable {
		return nil
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	host := s.cfg.Host
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	from := s.cfg.From
	if from == "" {
		from = s.cfg.User
	}

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)
	return smtp.SendMail(addr, auth, from, msg.To, body.Bytes())
}

// SendAsync dispatches an email in the background, fire-and-forget.
func (s *Sender) SendAsync(msg Message) {
	go func() {
		if err := s.Send(msg); err != nil {
			s.log.Warn("mail delivery failed",
				zap.Strings("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}()
}
