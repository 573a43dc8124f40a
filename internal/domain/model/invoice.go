package model

import "time"

// InvoiceStatus describes payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid
}

// Invoice is a stored invoice row. Amount is kept in minor units (cents).
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
	Date       time.Time
}

// InvoiceInput holds user supplied invoice fields after validation.
type InvoiceInput struct {
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
}

// InvoiceRow is an invoice joined with its customer for list views.
type InvoiceRow struct {
	ID            string
	Amount        int64
	Date          time.Time
	Status        InvoiceStatus
	CustomerName  string
	CustomerEmail string
	ImageURL      string
}

// InvoiceForm is an invoice prepared for the edit form.
type InvoiceForm struct {
	ID         string
	CustomerID string
	Amount     int64
	Status     InvoiceStatus
}

// Overview aggregates dashboard card figures.
type Overview struct {
	InvoiceCount  int
	CustomerCount int
	TotalPaid     int64
	TotalPending  int64
	Latest        []InvoiceRow
}
