package member_fx

import (
	"go.uber.org/fx"

	"groundedwarriors/internal/repositories"
	"groundedwarriors/internal/services"
)

var Module = fx.Provide(
	repositories.NewRegistrationRepository,
	repositories.NewDiscussionRepository,
	services.NewMemberService,
)
