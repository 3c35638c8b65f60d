package notification

// Mailer define el puerto de envío de correo. La implementación real va por
// SMTP; los tests usan un fake que captura los mensajes.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}
