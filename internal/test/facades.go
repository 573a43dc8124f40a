package test

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/search"
)

// InvoiceFacadeStub provides controllable behaviour for invoice endpoints.
type InvoiceFacadeStub struct {
	OverviewFn  func(context.Context) (*model.Overview, error)
	InvoicesFn  func(context.Context, search.State) ([]model.InvoiceRow, error)
	PagesFn     func(context.Context, string) (int, error)
	CustomersFn func(context.Context) ([]model.Customer, error)
	InvoiceFn   func(context.Context, string) (*model.InvoiceForm, error)
	CreateFn    func(context.Context, url.Values) model.FormState
	UpdateFn    func(context.Context, string, url.Values) model.FormState
	DeleteFn    func(context.Context, string) model.FormState
}

// Overview returns configured overview or a small default.
func (s InvoiceFacadeStub) Overview(ctx context.Context) (*model.Overview, error) {
	if s.OverviewFn != nil {
		return s.OverviewFn(ctx)
	}
	return &model.Overview{InvoiceCount: 1, CustomerCount: 1, TotalPaid: 1050, Latest: []model.InvoiceRow{DefaultInvoiceRow()}}, nil
}

// Invoices returns configured rows or a single default row.
func (s InvoiceFacadeStub) Invoices(ctx context.Context, state search.State) ([]model.InvoiceRow, error) {
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx, state)
	}
	return []model.InvoiceRow{DefaultInvoiceRow()}, nil
}

// InvoicePages returns configured page count or one.
func (s InvoiceFacadeStub) InvoicePages(ctx context.Context, term string) (int, error) {
	if s.PagesFn != nil {
		return s.PagesFn(ctx, term)
	}
	return 1, nil
}

// Customers returns configured customers or a single default one.
func (s InvoiceFacadeStub) Customers(ctx context.Context) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx)
	}
	return []model.Customer{{ID: "c1", Name: "Delba de Oliveira", Email: "delba@oliveira.com"}}, nil
}

// Invoice returns configured invoice or a default pending one.
func (s InvoiceFacadeStub) Invoice(ctx context.Context, id string) (*model.InvoiceForm, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, id)
	}
	return &model.InvoiceForm{ID: id, CustomerID: "c1", Amount: 1050, Status: model.InvoiceStatusPending}, nil
}

// CreateInvoice succeeds unless overridden.
func (s InvoiceFacadeStub) CreateInvoice(ctx context.Context, form url.Values) model.FormState {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, form)
	}
	return model.FormState{}
}

// UpdateInvoice succeeds unless overridden.
func (s InvoiceFacadeStub) UpdateInvoice(ctx context.Context, id string, form url.Values) model.FormState {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, form)
	}
	return model.FormState{}
}

// DeleteInvoice succeeds unless overridden.
func (s InvoiceFacadeStub) DeleteInvoice(ctx context.Context, id string) model.FormState {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return model.FormState{}
}

// DefaultInvoiceRow returns the row served by InvoiceFacadeStub by default.
func DefaultInvoiceRow() model.InvoiceRow {
	return model.InvoiceRow{
		ID:            "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		Amount:        1050,
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:        model.InvoiceStatusPending,
		CustomerName:  "Delba de Oliveira",
		CustomerEmail: "delba@oliveira.com",
	}
}

// DashboardFacadeStub aggregates facade dependencies for HTTP layer tests.
type DashboardFacadeStub struct {
	AuthFacadeStub
	InvoiceFacadeStub
}

// InvalidatorStub records invalidated paths.
type InvalidatorStub struct {
	mu    sync.Mutex
	Paths []string
}

// Invalidate records path.
func (s *InvalidatorStub) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Paths = append(s.Paths, path)
}

// MutationObserverStub records observed mutation outcomes as "op:outcome".
type MutationObserverStub struct {
	mu       sync.Mutex
	Observed []string
}

// ObserveMutation records op and outcome.
func (s *MutationObserverStub) ObserveMutation(op, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Observed = append(s.Observed, op+":"+outcome)
}

// SweeperStub counts sweeps performed by the janitor.
type SweeperStub struct {
	mu      sync.Mutex
	Calls   int
	Removed int
	Swept   chan struct{}
}

// Sweep records the call and returns Removed.
func (s *SweeperStub) Sweep(now time.Time) int {
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()
	if s.Swept != nil {
		select {
		case s.Swept <- struct{}{}:
		default:
		}
	}
	return s.Removed
}

// SweepCalls returns number of sweeps so far.
func (s *SweeperStub) SweepCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls
}
