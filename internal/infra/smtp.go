package infra

import (
	"fmt"
	"net/smtp"

	"github.com/MateoRicci/gestion-cec-sub000/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends the recibo PDFs to clients. Sends are advisory: a failure is
// handled by the worker's circuit breaker and retry, never by the sale path.
type Mailer struct {
	from string
	addr string
	auth smtp.Auth
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		from: fmt.Sprintf("%s <%s>", cfg.NombreClub, cfg.SMTPUser),
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		auth: smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost),
	}
}

// SendRecibo mails the PDF at pdfPath as an attachment. An empty pdfPath
// sends the plain-text body alone.
func (m *Mailer) SendRecibo(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: adjuntar recibo: %w", err)
		}
	}
	return e.Send(m.addr, m.auth)
}
