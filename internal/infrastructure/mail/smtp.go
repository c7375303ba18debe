// Package mail adapta un servidor SMTP al puerto Mailer. El servicio trata
// el correo como colaborador externo: los fallos se registran y nunca
// revierten la operación que disparó la notificación.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/reconciliemos/cuentas-api/internal/application/usecase"
	"github.com/reconciliemos/cuentas-api/pkg/config"
	"github.com/reconciliemos/cuentas-api/pkg/logger"
)

var _ usecase.Mailer = (*SMTPSender)(nil)

// SMTPSender envía correos HTML vía SMTP autenticado.
type SMTPSender struct {
	client      *gomail.Client
	fromName    string
	fromAddress string
}

// NewSMTPSender construye el cliente SMTP desde la configuración.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp: host requerido")
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp: crear cliente: %w", err)
	}
	fromAddress := cfg.FromAddress
	if fromAddress == "" {
		fromAddress = cfg.Username
	}
	return &SMTPSender{client: client, fromName: cfg.FromName, fromAddress: fromAddress}, nil
}

// Send envía un correo HTML. El contexto acota la conexión y el envío.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromAddress); err != nil {
		return fmt.Errorf("smtp: remitente: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("smtp: destinatario: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", to, err)
	}
	return nil
}

// NopSender implementación sin transporte para entornos sin SMTP configurado:
// registra el envío y lo descarta.
type NopSender struct {
	log *logger.Logger
}

// NewNopSender construye el mailer nulo.
func NewNopSender(log *logger.Logger) *NopSender {
	return &NopSender{log: log}
}

// Send registra el correo descartado. Nunca falla.
func (s *NopSender) Send(_ context.Context, to, subject, _ string) error {
	s.log.Warn().Str("to", to).Str("subject", subject).Msg("SMTP no configurado: correo descartado")
	return nil
}
