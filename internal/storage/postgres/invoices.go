package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

const invoiceRowColumns = `invoices.id, invoices.amount, invoices.date, invoices.status,
        customers.name, customers.email, customers.image_url`

const invoiceJoin = `FROM invoices JOIN customers ON invoices.customer_id = customers.id`

const invoiceFilter = `WHERE customers.name ILIKE $1
          OR customers.email ILIKE $1
          OR invoices.amount::text ILIKE $1
          OR invoices.date::text ILIKE $1
          OR invoices.status ILIKE $1`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere in a value.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *invoiceRepository) Create(ctx context.Context, inv model.Invoice) error {
	if uuid.Validate(inv.CustomerID) != nil {
		return fmt.Errorf("%w: %s", domainErrors.ErrUnknownCustomer, inv.CustomerID)
	}
	const query = `INSERT INTO invoices (id, customer_id, amount, status, date) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date)
	if err != nil {
		if isBadReference(err) {
			return fmt.Errorf("%w: %s", domainErrors.ErrUnknownCustomer, inv.CustomerID)
		}
		return err
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, id string, in model.InvoiceInput) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	if uuid.Validate(in.CustomerID) != nil {
		return fmt.Errorf("%w: %s", domainErrors.ErrUnknownCustomer, in.CustomerID)
	}
	const query = `UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`
	_, err := r.storage.pool.Exec(ctx, query, in.CustomerID, in.Amount, string(in.Status), id)
	if err != nil {
		if isBadReference(err) {
			return fmt.Errorf("%w: %s", domainErrors.ErrUnknownCustomer, in.CustomerID)
		}
		return err
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return nil
	}
	const query = `DELETE FROM invoices WHERE id = $1`
	_, err := r.storage.pool.Exec(ctx, query, id)
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*model.InvoiceForm, error) {
	if uuid.Validate(id) != nil {
		return nil, domainErrors.ErrNotFound
	}
	const query = `SELECT id, customer_id, amount, status FROM invoices WHERE id = $1`
	var (
		inv    model.InvoiceForm
		status string
	)
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	inv.Status = model.InvoiceStatus(status)
	return &inv, nil
}

func (r *invoiceRepository) Search(ctx context.Context, term string, limit, offset int) ([]model.InvoiceRow, error) {
	const query = `SELECT ` + invoiceRowColumns + `
        ` + invoiceJoin + `
        ` + invoiceFilter + `
        ORDER BY invoices.date DESC, invoices.id DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, containsPattern(term), limit, offset)
	if err != nil {
		return nil, err
	}
	return scanInvoiceRows(rows)
}

func (r *invoiceRepository) Count(ctx context.Context, term string) (int, error) {
	const query = `SELECT COUNT(*) ` + invoiceJoin + `
        ` + invoiceFilter
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, containsPattern(term)).Scan(&count); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *invoiceRepository) Overview(ctx context.Context, latest int) (*model.Overview, error) {
	const (
		countInvoices  = `SELECT COUNT(*) FROM invoices`
		countCustomers = `SELECT COUNT(*) FROM customers`
		totals         = `SELECT
            COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0)::bigint,
            COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0)::bigint
        FROM invoices`
		latestRows = `SELECT ` + invoiceRowColumns + `
        ` + invoiceJoin + `
        ORDER BY invoices.date DESC, invoices.id DESC
        LIMIT $1`
	)

	var overview model.Overview
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := r.storage.WithinTransaction(ctx, opts, func(tx pgx.Tx) error {
		var invoices, customers int64
		if err := tx.QueryRow(ctx, countInvoices).Scan(&invoices); err != nil {
			return fmt.Errorf("count invoices: %w", err)
		}
		if err := tx.QueryRow(ctx, countCustomers).Scan(&customers); err != nil {
			return fmt.Errorf("count customers: %w", err)
		}
		if err := tx.QueryRow(ctx, totals).Scan(&overview.TotalPaid, &overview.TotalPending); err != nil {
			return fmt.Errorf("sum invoices: %w", err)
		}
		overview.InvoiceCount = int(invoices)
		overview.CustomerCount = int(customers)

		rows, err := tx.Query(ctx, latestRows, latest)
		if err != nil {
			return fmt.Errorf("latest invoices: %w", err)
		}
		overview.Latest, err = scanInvoiceRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

func scanInvoiceRows(rows pgx.Rows) ([]model.InvoiceRow, error) {
	defer rows.Close()

	var result []model.InvoiceRow
	for rows.Next() {
		var (
			row    model.InvoiceRow
			status string
		)
		if err := rows.Scan(&row.ID, &row.Amount, &row.Date, &status, &row.CustomerName, &row.CustomerEmail, &row.ImageURL); err != nil {
			return nil, err
		}
		row.Status = model.InvoiceStatus(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
