package payment_service_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"groundedwarriors/internal/config"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/internal/services"
)

var Module = fx.Provide(
	providePaymentGateway, providePaymentService,
)

func providePaymentGateway(cfg config.Config, logger *zap.Logger) services.PaymentGateway {
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout is disabled")
	}
	return services.NewStripeGateway(services.StripeConfig{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
	})
}

func providePaymentService(
	gateway services.PaymentGateway,
	registrations repositories.RegistrationRepositoryInterface,
	cfg config.Config,
	logger *zap.Logger,
) services.PaymentService {
	return services.NewPaymentService(gateway, registrations, services.PaymentConfig{
		BaseURL:  cfg.BaseURL,
		Currency: cfg.StripeCurrency,
	}, logger)
}
