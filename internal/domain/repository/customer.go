package repository

import (
	"context"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
}
