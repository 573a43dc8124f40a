package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	Next  int
	Err   error

	Lookups int
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: fmt.Sprintf("user-%d", s.Next), Name: name, Email: email, PasswordHash: passwordHash}
	s.Next++
	s.Users[email] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CustomerRepositoryStub keeps customers in insertion order.
type CustomerRepositoryStub struct {
	CreateFn func(context.Context, model.Customer) error
	ListFn   func(context.Context) ([]model.Customer, error)

	Items []model.Customer
}

// Create appends customer unless override is configured.
func (s *CustomerRepositoryStub) Create(ctx context.Context, c model.Customer) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, c)
	}
	s.Items = append(s.Items, c)
	return nil
}

// List returns stored customers sorted by name.
func (s *CustomerRepositoryStub) List(ctx context.Context) ([]model.Customer, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	out := append([]model.Customer(nil), s.Items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// InvoiceUpdateCall stores arguments of Update invocations.
type InvoiceUpdateCall struct {
	ID    string
	Input model.InvoiceInput
}

// SearchCall stores arguments of Search invocations.
type SearchCall struct {
	Term   string
	Limit  int
	Offset int
}

// InvoiceRepositoryStub records mutations and serves configured reads.
type InvoiceRepositoryStub struct {
	CreateFn   func(context.Context, model.Invoice) error
	UpdateFn   func(context.Context, string, model.InvoiceInput) error
	DeleteFn   func(context.Context, string) error
	GetByIDFn  func(context.Context, string) (*model.InvoiceForm, error)
	SearchFn   func(context.Context, string, int, int) ([]model.InvoiceRow, error)
	CountFn    func(context.Context, string) (int, error)
	OverviewFn func(context.Context, int) (*model.Overview, error)

	Rows []model.InvoiceRow

	mu       sync.Mutex
	Created  []model.Invoice
	Updated  []InvoiceUpdateCall
	Deleted  []string
	Searches []SearchCall
}

// Create records invoice or delegates to override.
func (s *InvoiceRepositoryStub) Create(ctx context.Context, inv model.Invoice) error {
	s.mu.Lock()
	s.Created = append(s.Created, inv)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, inv)
	}
	return nil
}

// Update records update request or delegates to override.
func (s *InvoiceRepositoryStub) Update(ctx context.Context, id string, input model.InvoiceInput) error {
	s.mu.Lock()
	s.Updated = append(s.Updated, InvoiceUpdateCall{ID: id, Input: input})
	s.mu.Unlock()
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, input)
	}
	return nil
}

// Delete records removed id or delegates to override.
func (s *InvoiceRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.Deleted = append(s.Deleted, id)
	s.mu.Unlock()
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// GetByID finds invoice among configured rows.
func (s *InvoiceRepositoryStub) GetByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, r := range s.Rows {
		if r.ID == id {
			return &model.InvoiceForm{ID: r.ID, Amount: r.Amount, Status: r.Status}, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Search pages over configured rows containing the term in customer name or email.
func (s *InvoiceRepositoryStub) Search(ctx context.Context, term string, limit, offset int) ([]model.InvoiceRow, error) {
	s.mu.Lock()
	s.Searches = append(s.Searches, SearchCall{Term: term, Limit: limit, Offset: offset})
	s.mu.Unlock()
	if s.SearchFn != nil {
		return s.SearchFn(ctx, term, limit, offset)
	}
	matched := s.matching(term)
	if offset >= len(matched) {
		return []model.InvoiceRow{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count returns number of configured rows matching the term.
func (s *InvoiceRepositoryStub) Count(ctx context.Context, term string) (int, error) {
	if s.CountFn != nil {
		return s.CountFn(ctx, term)
	}
	return len(s.matching(term)), nil
}

// Overview returns override result or figures computed from configured rows.
func (s *InvoiceRepositoryStub) Overview(ctx context.Context, latest int) (*model.Overview, error) {
	if s.OverviewFn != nil {
		return s.OverviewFn(ctx, latest)
	}
	ov := &model.Overview{InvoiceCount: len(s.Rows)}
	for _, r := range s.Rows {
		switch r.Status {
		case model.InvoiceStatusPaid:
			ov.TotalPaid += r.Amount
		case model.InvoiceStatusPending:
			ov.TotalPending += r.Amount
		}
	}
	if latest > len(s.Rows) {
		latest = len(s.Rows)
	}
	ov.Latest = s.Rows[:latest]
	return ov, nil
}

func (s *InvoiceRepositoryStub) matching(term string) []model.InvoiceRow {
	term = strings.ToLower(term)
	var out []model.InvoiceRow
	for _, r := range s.Rows {
		if strings.Contains(strings.ToLower(r.CustomerName), term) ||
			strings.Contains(strings.ToLower(r.CustomerEmail), term) ||
			strings.Contains(string(r.Status), term) {
			out = append(out, r)
		}
	}
	return out
}
