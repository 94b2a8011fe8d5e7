// Package mail implementa el envío de correo saliente vía SMTP (gomail).
package mail

import (
	"bytes"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/azex/pestops-api/internal/application/billing"
	"github.com/azex/pestops-api/pkg/config"
)

var _ billing.Mailer = (*GomailSender)(nil)

// GomailSender implementa billing.Mailer sobre un servidor SMTP.
type GomailSender struct {
	cfg config.MailConfig
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.MailConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// Send envía un correo de texto plano con un adjunto opcional.
func (s *GomailSender) Send(to, subject, body string, attachmentName string, attachment []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if attachmentName != "" && len(attachment) > 0 {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(attachment))
			return err
		}))
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
