package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/domain/repository"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	"github.com/polkiloo/invoices-dashboard/internal/search"
)

// InvoicesPath is the invoice list route whose cached pages are dropped after a mutation.
const InvoicesPath = "/dashboard/invoices"

// ItemsPerPage is the fixed size of an invoice list page.
const ItemsPerPage = 6

// LatestInvoices is the number of recent invoices on the dashboard overview.
const LatestInvoices = 5

// Form state messages.
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."
	MsgCreateFailed        = "Database Error: Failed to Create Invoice!"
	MsgUpdateFailed        = "Database Error: Failed to Update Invoice!"
	MsgDeleteFailed        = "Database Error: Failed to Delete Invoice!"
)

// Mutation operations and outcomes reported to MutationObserver.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"

	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeDBFailed = "db_error"
)

// Invalidator drops cached renderings of a route.
type Invalidator interface {
	Invalidate(path string)
}

// MutationObserver receives the outcome of every invoice mutation.
type MutationObserver interface {
	ObserveMutation(op, outcome string)
}

// InvoiceUseCase implements invoice mutations and the list read path.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	cache     Invalidator
	observer  MutationObserver
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	cache Invalidator,
	observer MutationObserver,
	logger *slog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:  invoices,
		customers: customers,
		cache:     cache,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Create validates the form and stores a new invoice dated today.
// The zero FormState means the invoice was stored.
func (u *InvoiceUseCase) Create(ctx context.Context, form url.Values) model.FormState {
	input, err := schema.ValidateInvoice(form)
	if err != nil {
		u.observe(OpCreate, OutcomeInvalid)
		return invalidState(err, MsgCreateMissingFields)
	}

	invoice := model.Invoice{
		ID:         u.newID(),
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Status:     input.Status,
		Date:       today(u.now()),
	}
	if err := u.invoices.Create(ctx, invoice); err != nil {
		return u.persistFailed(OpCreate, err, MsgCreateMissingFields, MsgCreateFailed)
	}

	u.logger.Info("invoice created", slog.String("id", invoice.ID), slog.Int64("amount", invoice.Amount))
	u.mutated(OpCreate)
	return model.FormState{}
}

// Update validates the form and replaces customer, amount and status of invoice id.
func (u *InvoiceUseCase) Update(ctx context.Context, id string, form url.Values) model.FormState {
	input, err := schema.ValidateInvoice(form)
	if err != nil {
		u.observe(OpUpdate, OutcomeInvalid)
		return invalidState(err, MsgUpdateMissingFields)
	}

	if err := u.invoices.Update(ctx, id, input); err != nil {
		return u.persistFailed(OpUpdate, err, MsgUpdateMissingFields, MsgUpdateFailed)
	}

	u.logger.Info("invoice updated", slog.String("id", id))
	u.mutated(OpUpdate)
	return model.FormState{}
}

// Delete removes invoice id. Removing an invoice that no longer exists succeeds.
func (u *InvoiceUseCase) Delete(ctx context.Context, id string) model.FormState {
	if err := u.invoices.Delete(ctx, id); err != nil {
		u.logger.Error("delete invoice", slog.String("id", id), slog.String("error", err.Error()))
		u.observe(OpDelete, OutcomeDBFailed)
		return model.FormState{Message: MsgDeleteFailed}
	}

	u.logger.Info("invoice deleted", slog.String("id", id))
	u.mutated(OpDelete)
	return model.FormState{}
}

// Get loads invoice id for the edit form.
func (u *InvoiceUseCase) Get(ctx context.Context, id string) (*model.InvoiceForm, error) {
	return u.invoices.GetByID(ctx, id)
}

// Customers lists customers for the invoice form select.
func (u *InvoiceUseCase) Customers(ctx context.Context) ([]model.Customer, error) {
	return u.customers.List(ctx)
}

// List returns the requested page of invoices matching the search term.
// Pages past the end are empty.
func (u *InvoiceUseCase) List(ctx context.Context, state search.State) ([]model.InvoiceRow, error) {
	page := state.Page
	if page < 1 {
		page = 1
	}
	return u.invoices.Search(ctx, state.Query, ItemsPerPage, (page-1)*ItemsPerPage)
}

// Pages returns how many list pages the search term produces.
func (u *InvoiceUseCase) Pages(ctx context.Context, term string) (int, error) {
	count, err := u.invoices.Count(ctx, term)
	if err != nil {
		return 0, err
	}
	return (count + ItemsPerPage - 1) / ItemsPerPage, nil
}

// Overview collects dashboard card figures and the latest invoices.
func (u *InvoiceUseCase) Overview(ctx context.Context) (*model.Overview, error) {
	return u.invoices.Overview(ctx, LatestInvoices)
}

func (u *InvoiceUseCase) persistFailed(op string, err error, missingMsg, failedMsg string) model.FormState {
	if errors.Is(err, domainErrors.ErrUnknownCustomer) {
		u.observe(op, OutcomeInvalid)
		return model.FormState{
			Errors:  map[string][]string{schema.FieldCustomerID: {schema.MsgCustomer}},
			Message: missingMsg,
		}
	}

	u.logger.Error(op+" invoice", slog.String("error", err.Error()))
	u.observe(op, OutcomeDBFailed)
	return model.FormState{Message: failedMsg}
}

func (u *InvoiceUseCase) mutated(op string) {
	if u.cache != nil {
		u.cache.Invalidate(InvoicesPath)
	}
	u.observe(op, OutcomeOK)
}

func (u *InvoiceUseCase) observe(op, outcome string) {
	if u.observer != nil {
		u.observer.ObserveMutation(op, outcome)
	}
}

func invalidState(err error, message string) model.FormState {
	state := model.FormState{Message: message}
	if verr, ok := schema.AsValidationError(err); ok {
		state.Errors = verr.Fields
	}
	return state
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
