package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/domain/repository"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
)

var ErrInvalidCustomer = errors.New("customer name and a valid email are required")

// CustomerUseCase manages the customers invoices are billed to.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

// Create stores a customer under a fresh id.
func (u *CustomerUseCase) Create(ctx context.Context, name, email, imageURL string) (*model.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCustomer
	}
	email, err := schema.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCustomer, err)
	}

	c := model.Customer{ID: uuid.NewString(), Name: name, Email: email, ImageURL: strings.TrimSpace(imageURL)}
	if err := u.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (u *CustomerUseCase) List(ctx context.Context) ([]model.Customer, error) {
	return u.customers.List(ctx)
}
