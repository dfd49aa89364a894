package controllers_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"groundedwarriors/internal/api/controllers"
	"groundedwarriors/internal/infra"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewContactController),
	fx.Provide(controllers.NewMemberController),
	fx.Provide(provideHealthController),
)

func provideHealthController(db *gorm.DB, logger *zap.Logger) *controllers.HealthController {
	return controllers.NewHealthController(func(ctx context.Context) error {
		return infra.Ping(ctx, db)
	}, logger)
}
