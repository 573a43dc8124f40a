package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	pkgAuth "github.com/polkiloo/invoices-dashboard/internal/pkg/auth"
	"github.com/polkiloo/invoices-dashboard/internal/storage/postgres"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
)

type userRegistrar interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
}

type customerCreator interface {
	Create(ctx context.Context, name, email, imageURL string) (*model.Customer, error)
}

// backend isolates commands from the database so they can be exercised in tests.
type backend struct {
	logger    *slog.Logger
	migrate   func(ctx context.Context, dsn string, logger *slog.Logger) error
	status    func(ctx context.Context, dsn string) ([]postgres.MigrationStatus, error)
	users     func(ctx context.Context, dsn string) (userRegistrar, func(), error)
	customers func(ctx context.Context, dsn string) (customerCreator, func(), error)
}

func defaultBackend() backend {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return backend{
		logger:  logger,
		migrate: postgres.Migrate,
		status:  postgres.Status,
		users: func(ctx context.Context, dsn string) (userRegistrar, func(), error) {
			storage, err := postgres.New(ctx, dsn, logger, postgres.Options{})
			if err != nil {
				return nil, nil, err
			}
			return usecase.NewAuthUseCase(storage.Users(), pkgAuth.NewBcryptHasher(0), nil), storage.Close, nil
		},
		customers: func(ctx context.Context, dsn string) (customerCreator, func(), error) {
			storage, err := postgres.New(ctx, dsn, logger, postgres.Options{})
			if err != nil {
				return nil, nil, err
			}
			return usecase.NewCustomerUseCase(storage.Customers()), storage.Close, nil
		},
	}
}
