package auth

import (
	"github.com/polkiloo/invoices-dashboard/internal/config"
	"go.uber.org/fx"
)

// Module provides password hashing and session token strategy via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

func newPasswordHasher() PasswordHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.AuthSecret, Options{TTL: p.Config.SessionTTL})
}
