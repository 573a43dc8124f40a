package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	testhelpers "github.com/polkiloo/invoices-dashboard/internal/test"
)

func TestCustomerUseCaseCreate(t *testing.T) {
	repo := &testhelpers.CustomerRepositoryStub{}
	uc := NewCustomerUseCase(repo)

	c, err := uc.Create(context.Background(), " Delba de Oliveira ", " delba@oliveira.com ", " /customers/delba.png ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID == "" || c.Name != "Delba de Oliveira" || c.Email != "delba@oliveira.com" || c.ImageURL != "/customers/delba.png" {
		t.Fatalf("unexpected customer %+v", c)
	}
	if len(repo.Items) != 1 || repo.Items[0] != *c {
		t.Fatalf("expected customer to be stored, got %+v", repo.Items)
	}
}

func TestCustomerUseCaseCreateRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		email string
	}{
		{name: "", email: "bob@example.com"},
		{name: "Bob", email: ""},
		{name: "Bob", email: "bob"},
		{name: "Bob", email: "Bob Smith <bob@example.com>"},
	}

	for _, tc := range cases {
		repo := &testhelpers.CustomerRepositoryStub{}
		_, err := NewCustomerUseCase(repo).Create(context.Background(), tc.name, tc.email, "")
		if !errors.Is(err, ErrInvalidCustomer) {
			t.Fatalf("Create(%q, %q): expected ErrInvalidCustomer, got %v", tc.name, tc.email, err)
		}
		if len(repo.Items) != 0 {
			t.Fatalf("Create(%q, %q): nothing must be stored, got %+v", tc.name, tc.email, repo.Items)
		}
	}

	_, err := NewCustomerUseCase(&testhelpers.CustomerRepositoryStub{}).Create(context.Background(), "Bob", "Bob Smith <bob@example.com>", "")
	if _, ok := schema.AsValidationError(err); !ok {
		t.Fatalf("expected email validation error to be wrapped, got %v", err)
	}
}

func TestCustomerUseCaseCreateRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	repo := &testhelpers.CustomerRepositoryStub{CreateFn: func(context.Context, model.Customer) error { return boom }}
	if _, err := NewCustomerUseCase(repo).Create(context.Background(), "Bob", "bob@example.com", ""); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestCustomerUseCaseList(t *testing.T) {
	repo := &testhelpers.CustomerRepositoryStub{Items: []model.Customer{{ID: "2", Name: "Lee"}, {ID: "1", Name: "Amy"}}}
	got, err := NewCustomerUseCase(repo).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Amy" {
		t.Fatalf("unexpected customers %+v", got)
	}
}
