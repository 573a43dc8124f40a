package di

import (
	"github.com/polkiloo/invoices-dashboard/internal/app"
	"github.com/polkiloo/invoices-dashboard/internal/config"
	"github.com/polkiloo/invoices-dashboard/internal/logger"
	"github.com/polkiloo/invoices-dashboard/internal/obs"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/router"
	"github.com/polkiloo/invoices-dashboard/internal/storage/postgres"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		obs.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
