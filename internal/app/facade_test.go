package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	"github.com/polkiloo/invoices-dashboard/internal/search"
	testhelpers "github.com/polkiloo/invoices-dashboard/internal/test"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
)

type facadeFixture struct {
	facade    *DashboardFacade
	users     *testhelpers.UserRepositoryStub
	invoices  *testhelpers.InvoiceRepositoryStub
	customers *testhelpers.CustomerRepositoryStub
	cache     *testhelpers.InvalidatorStub
}

func newFacade() facadeFixture {
	f := facadeFixture{
		users:     testhelpers.NewUserRepositoryStub(),
		invoices:  &testhelpers.InvoiceRepositoryStub{},
		customers: &testhelpers.CustomerRepositoryStub{Items: []model.Customer{{ID: "c1", Name: "Delba de Oliveira"}}},
		cache:     &testhelpers.InvalidatorStub{},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	authUC := usecase.NewAuthUseCase(f.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{})
	invoiceUC := usecase.NewInvoiceUseCase(f.invoices, f.customers, f.cache, &testhelpers.MutationObserverStub{}, logger)
	f.facade = NewDashboardFacade(authUC, invoiceUC)
	return f
}

func TestDashboardFacadeSignIn(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	if _, err := usecase.NewAuthUseCase(f.users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}).
		Register(ctx, "Operator", "user@nextmail.com", "123456"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	token, err := f.facade.SignIn(ctx, url.Values{
		schema.FieldEmail:    {"user@nextmail.com"},
		schema.FieldPassword: {"123456"},
	})
	if err != nil {
		t.Fatalf("sign in returned error: %v", err)
	}
	if token != "token:user-1" {
		t.Fatalf("unexpected token %q", token)
	}

	_, err = f.facade.SignIn(ctx, url.Values{
		schema.FieldEmail:    {"user@nextmail.com"},
		schema.FieldPassword: {"wrong-password"},
	})
	if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestDashboardFacadeSession(t *testing.T) {
	f := newFacade()
	if f.facade.Session("").LoggedIn() {
		t.Fatal("expected anonymous session for empty token")
	}
	if !f.facade.Session("token:1").LoggedIn() {
		t.Fatal("expected logged in session")
	}
}

func TestDashboardFacadeInvoiceMutations(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	form := url.Values{
		schema.FieldCustomerID: {"c1"},
		schema.FieldAmount:     {"12.34"},
		schema.FieldStatus:     {"paid"},
	}

	if state := f.facade.CreateInvoice(ctx, form); state.Failed() {
		t.Fatalf("create failed: %+v", state)
	}
	if len(f.invoices.Created) != 1 || f.invoices.Created[0].Amount != 1234 {
		t.Fatalf("unexpected created invoices %+v", f.invoices.Created)
	}

	if state := f.facade.UpdateInvoice(ctx, "inv-9", form); state.Failed() {
		t.Fatalf("update failed: %+v", state)
	}
	if len(f.invoices.Updated) != 1 || f.invoices.Updated[0].ID != "inv-9" {
		t.Fatalf("unexpected updates %+v", f.invoices.Updated)
	}

	if state := f.facade.DeleteInvoice(ctx, "inv-9"); state.Failed() {
		t.Fatalf("delete failed: %+v", state)
	}
	if len(f.invoices.Deleted) != 1 {
		t.Fatalf("expected delete to be recorded")
	}

	if len(f.cache.Paths) != 3 {
		t.Fatalf("expected three invalidations, got %v", f.cache.Paths)
	}

	state := f.facade.CreateInvoice(ctx, url.Values{})
	if state.Message != usecase.MsgCreateMissingFields {
		t.Fatalf("unexpected message %q", state.Message)
	}
}

func TestDashboardFacadeReads(t *testing.T) {
	f := newFacade()
	ctx := context.Background()
	f.invoices.Rows = []model.InvoiceRow{
		{ID: "a", CustomerName: "Delba de Oliveira", CustomerEmail: "delba@oliveira.com", Status: model.InvoiceStatusPaid, Amount: 100},
		{ID: "b", CustomerName: "Lee Robinson", CustomerEmail: "lee@robinson.com", Status: model.InvoiceStatusPending, Amount: 200},
	}

	rows, err := f.facade.Invoices(ctx, search.State{Query: "delba", Page: 1})
	if err != nil {
		t.Fatalf("invoices returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "a" {
		t.Fatalf("unexpected rows %+v", rows)
	}

	pages, err := f.facade.InvoicePages(ctx, "")
	if err != nil || pages != 1 {
		t.Fatalf("unexpected pages=%d err=%v", pages, err)
	}

	customers, err := f.facade.Customers(ctx)
	if err != nil || len(customers) != 1 {
		t.Fatalf("unexpected customers=%v err=%v", customers, err)
	}

	if _, err := f.facade.Overview(ctx); err != nil {
		t.Fatalf("overview returned error: %v", err)
	}

	f.invoices.GetByIDFn = func(context.Context, string) (*model.InvoiceForm, error) {
		return nil, domainErrors.ErrNotFound
	}
	if _, err := f.facade.Invoice(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
