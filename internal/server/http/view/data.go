package view

import (
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// Layout carries values every page needs.
type Layout struct {
	Title string
}

// LoginPage is the data of the login form.
type LoginPage struct {
	Layout
	Email       string
	CallbackURL string
	Error       string
}

// DashboardPage is the data of the overview page.
type DashboardPage struct {
	Layout
	Overview *model.Overview
}

// PageLink is one pagination item. Page is zero for an ellipsis.
type PageLink struct {
	Page    int
	URL     string
	Current bool
}

// InvoicesPage is the data of the invoice list page.
type InvoicesPage struct {
	Layout
	Query       string
	Page        int
	TotalPages  int
	Rows        []model.InvoiceRow
	Links       []PageLink
	PrevURL     string
	NextURL     string
	SearchURL   string
	DeleteState model.FormState
}

// InvoiceFormPage is the data of the create and edit forms.
type InvoiceFormPage struct {
	Layout
	Action    string
	Submit    string
	Customers []model.Customer
	Invoice   model.InvoiceForm
	// Amount echoes the submitted amount after a rejected post.
	Amount string
	State  model.FormState
}

// ErrorPage is the data of the not found and error pages.
type ErrorPage struct {
	Layout
	Message string
}
