package model

// Customer is a billable party referenced by invoices.
type Customer struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}
