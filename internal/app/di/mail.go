// Package di provides dependency injection factories for creating application components.
package di

import (
	"taskbite_backend/internal/feature/auth/usecase"
	"taskbite_backend/internal/platform/config"
	"taskbite_backend/internal/platform/mail"
)

// NewMailer creates a Mailer implementation. Without SMTP credentials
// it falls back to logging outgoing mail, which keeps password resets
// and verification flows usable in local development.
func NewMailer(cfg *config.Config) usecase.Mailer {
	if cfg.MailUser == "" {
		return mail.LogMailer{}
	}
	return mail.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailSender)
}
