package repository

import (
	"context"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice model.Invoice) error
	Update(ctx context.Context, id string, input model.InvoiceInput) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.InvoiceForm, error)
	// Search returns at most limit rows matching term, skipping offset rows.
	Search(ctx context.Context, term string, limit, offset int) ([]model.InvoiceRow, error)
	Count(ctx context.Context, term string) (int, error)
	Overview(ctx context.Context, latest int) (*model.Overview, error)
}
