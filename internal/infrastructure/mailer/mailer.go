// Package mailer implementa el envío de correos vía SMTP con gomail.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Ofertas-api/internal/application/notification"
	"github.com/jhoicas/Ofertas-api/pkg/config"
)

var _ notification.Mailer = (*SMTPMailer)(nil)

// SMTPMailer envía correos HTML a través del SMTP configurado.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send envía un correo HTML a un destinatario. Abre y cierra la conexión
// en cada envío: el volumen de notificaciones no justifica mantenerla viva.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
