package contact_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/internal/config"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/internal/services"
)

var Module = fx.Provide(
	repositories.NewContactRepository,
	repositories.NewNewsletterRepository,
	provideContactService,
	services.NewNewsletterService,
)

func provideContactService(
	repo repositories.ContactRepositoryInterface,
	mail services.IMailService,
	cfg config.Config,
	logger *zap.Logger,
) services.ContactServiceInterface {
	return services.NewContactService(repo, mail, cfg.ContactNotifyEmail, logger)
}
