package controllers_fx

import (
	"go.uber.org/fx"

	"tourdesk/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTourController),
	fx.Provide(controllers.NewTourMemberController))
