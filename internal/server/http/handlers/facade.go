package handlers

import (
	"context"
	"net/url"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/search"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	SignIn(ctx context.Context, form url.Values) (string, error)
	Session(token string) model.Session
}

// InvoiceFacade encapsulates invoice operations exposed via HTTP.
type InvoiceFacade interface {
	Overview(ctx context.Context) (*model.Overview, error)
	Invoices(ctx context.Context, state search.State) ([]model.InvoiceRow, error)
	InvoicePages(ctx context.Context, term string) (int, error)
	Customers(ctx context.Context) ([]model.Customer, error)
	Invoice(ctx context.Context, id string) (*model.InvoiceForm, error)
	CreateInvoice(ctx context.Context, form url.Values) model.FormState
	UpdateInvoice(ctx context.Context, id string, form url.Values) model.FormState
	DeleteInvoice(ctx context.Context, id string) model.FormState
}

// DashboardFacade aggregates the full set of operations used across handlers.
type DashboardFacade interface {
	AuthFacade
	InvoiceFacade
}
