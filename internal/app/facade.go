package app

import (
	"context"
	"net/url"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/search"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
)

// DashboardFacade exposes the use cases the HTTP layer depends on.
type DashboardFacade struct {
	auth     *usecase.AuthUseCase
	invoices *usecase.InvoiceUseCase
}

func NewDashboardFacade(auth *usecase.AuthUseCase, invoices *usecase.InvoiceUseCase) *DashboardFacade {
	return &DashboardFacade{auth: auth, invoices: invoices}
}

func (f *DashboardFacade) SignIn(ctx context.Context, form url.Values) (string, error) {
	_, token, err := f.auth.SignIn(ctx, form)
	return token, err
}

func (f *DashboardFacade) Session(token string) model.Session {
	return f.auth.Session(token)
}

func (f *DashboardFacade) Overview(ctx context.Context) (*model.Overview, error) {
	return f.invoices.Overview(ctx)
}

func (f *DashboardFacade) Invoices(ctx context.Context, state search.State) ([]model.InvoiceRow, error) {
	return f.invoices.List(ctx, state)
}

func (f *DashboardFacade) InvoicePages(ctx context.Context, term string) (int, error) {
	return f.invoices.Pages(ctx, term)
}

func (f *DashboardFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.invoices.Customers(ctx)
}

func (f *DashboardFacade) Invoice(ctx context.Context, id string) (*model.InvoiceForm, error) {
	return f.invoices.Get(ctx, id)
}

func (f *DashboardFacade) CreateInvoice(ctx context.Context, form url.Values) model.FormState {
	return f.invoices.Create(ctx, form)
}

func (f *DashboardFacade) UpdateInvoice(ctx context.Context, id string, form url.Values) model.FormState {
	return f.invoices.Update(ctx, id, form)
}

func (f *DashboardFacade) DeleteInvoice(ctx context.Context, id string) model.FormState {
	return f.invoices.Delete(ctx, id)
}
