package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/internal/config"
	"groundedwarriors/internal/services"
)

var Module = fx.Provide(provideMailSender, provideMailService)

func provideMailSender(cfg config.Config, logger *zap.Logger) services.MailSender {
	switch cfg.MailProvider {
	case "sendgrid":
		if cfg.SendGridAPIKey != "" {
			return services.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
		}
		logger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
	case "smtp":
		if cfg.SMTPHost != "" {
			return services.NewSMTPSender(services.SMTPConfig{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				From:     cfg.MailFrom,
				FromName: cfg.MailFromName,
			})
		}
		logger.Warn("SMTP_HOST not set, emails will only be logged")
	}
	return services.NewLogSender(logger)
}

func provideMailService(sender services.MailSender, cfg config.Config) services.IMailService {
	return services.NewMailService(sender, cfg.MailFromName)
}
