// Пакет notify — email-уведомления клиентам.
// Отправка через net/smtp; при незаданном SMTP-хосте уведомления
// пишутся только в лог, что позволяет запускать портал без
// почтовой инфраструктуры.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/mstechy/gorex360/portal-module/internal/config"
)

// Mailer — отправка писем портала.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	baseURL  string
	logger   *slog.Logger
}

// NewMailer создаёт отправителя писем.
// При пустом cfg.SMTPHost работает в режиме log-only.
func NewMailer(cfg *config.Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		baseURL:  cfg.PublicBaseURL,
		logger:   logger.With(slog.String("component", "mailer")),
	}
}

// SendPasswordReset отправляет письмо с токеном восстановления пароля.
func (m *Mailer) SendPasswordReset(ctx context.Context, email, token string) error {
	subject := "Восстановление пароля / Password reset"
	body := fmt.Sprintf(
		"To reset your password, open the link below within 30 minutes:\r\n\r\n"+
			"%s/reset-password?token=%s\r\n\r\n"+
			"If you did not request a reset, ignore this message.\r\n",
		m.baseURL, token,
	)
	return m.send(ctx, email, subject, body)
}

// SendStatusUpdate уведомляет клиента о смене статуса заявки.
func (m *Mailer) SendStatusUpdate(ctx context.Context, email, serviceTitle, status string) error {
	subject := "Application status update"
	body := fmt.Sprintf(
		"The status of your application for %q is now: %s.\r\n\r\n"+
			"Track your application: %s/track\r\n",
		serviceTitle, status, m.baseURL,
	)
	return m.send(ctx, email, subject, body)
}

// send отправляет письмо или пишет его в лог в режиме log-only.
func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if m.host == "" {
		m.logger.Info("SMTP не настроен, письмо записано в лог",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("отправка письма через %s: %w", addr, err)
	}

	m.logger.Debug("Письмо отправлено",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}
