package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	domainErrors "github.com/polkiloo/invoices-dashboard/internal/domain/errors"
	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/pkg/cache"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	"github.com/polkiloo/invoices-dashboard/internal/search"
	"github.com/polkiloo/invoices-dashboard/internal/server/http/view"
	"github.com/polkiloo/invoices-dashboard/internal/usecase"
)

// SearchTermParam is the input name of the no-script search form.
const SearchTermParam = "term"

// PageStore caches rendered pages per path and query. Begin returns a
// generation that Set uses to discard pages rendered before an invalidation.
type PageStore interface {
	Get(path string, query url.Values) (cache.Entry, bool)
	Begin(path string) uint64
	Set(path string, query url.Values, gen uint64, contentType string, body []byte)
}

// InvoiceHandler manages invoice pages and mutations.
type InvoiceHandler struct {
	facade   InvoiceFacade
	renderer Renderer
	pages    PageStore
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade, renderer Renderer, pages PageStore) *InvoiceHandler {
	return &InvoiceHandler{facade: facade, renderer: renderer, pages: pages}
}

// List handles GET /dashboard/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	query := search.ParseState(c.Request.URL.Query()).Values()
	if entry, ok := h.pages.Get(usecase.InvoicesPath, query); ok {
		c.Data(http.StatusOK, entry.ContentType, entry.Body)
		return
	}

	gen := h.pages.Begin(usecase.InvoicesPath)
	body, err := h.renderList(c, query, model.FormState{})
	if err != nil {
		renderError(c, h.renderer, err, "Failed to fetch invoices.")
		return
	}
	h.pages.Set(usecase.InvoicesPath, query, gen, view.ContentType, body)
	c.Data(http.StatusOK, view.ContentType, body)
}

// Search handles GET /dashboard/invoices/search, the no-script search fallback.
func (h *InvoiceHandler) Search(c *gin.Context) {
	current := c.Request.URL.Query()
	term := current.Get(SearchTermParam)
	current.Del(SearchTermParam)
	c.Redirect(http.StatusSeeOther, search.ReplaceURL(usecase.InvoicesPath, current, term))
}

// CreatePage handles GET /dashboard/invoices/create.
func (h *InvoiceHandler) CreatePage(c *gin.Context) {
	h.renderForm(c, http.StatusOK, createFormPage(), model.InvoiceForm{}, "", model.FormState{})
}

// Create handles POST /dashboard/invoices/create.
func (h *InvoiceHandler) Create(c *gin.Context) {
	form := postForm(c)
	state := h.facade.CreateInvoice(c.Request.Context(), form)
	if state.Failed() {
		h.renderForm(c, failedStatus(state), createFormPage(), submitted(form, ""), form.Get(schema.FieldAmount), state)
		return
	}
	c.Redirect(http.StatusSeeOther, usecase.InvoicesPath)
}

// EditPage handles GET /dashboard/invoices/:id/edit.
func (h *InvoiceHandler) EditPage(c *gin.Context) {
	id := c.Param("id")
	invoice, err := h.facade.Invoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			render(c, h.renderer, http.StatusNotFound, view.PageNotFound, view.ErrorPage{Message: "Could not find the requested invoice."})
			return
		}
		renderError(c, h.renderer, err, "Failed to fetch invoice.")
		return
	}
	h.renderForm(c, http.StatusOK, editFormPage(id), *invoice, "", model.FormState{})
}

// Update handles POST /dashboard/invoices/:id/edit.
func (h *InvoiceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	form := postForm(c)
	state := h.facade.UpdateInvoice(c.Request.Context(), id, form)
	if state.Failed() {
		h.renderForm(c, failedStatus(state), editFormPage(id), submitted(form, id), form.Get(schema.FieldAmount), state)
		return
	}
	c.Redirect(http.StatusSeeOther, usecase.InvoicesPath)
}

// Delete handles POST /dashboard/invoices/:id/delete. The list is rendered in
// place for the posted search state instead of redirecting.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	form := postForm(c)
	state := h.facade.DeleteInvoice(c.Request.Context(), c.Param("id"))

	current := url.Values{}
	if q := form.Get(search.ParamQuery); q != "" {
		current.Set(search.ParamQuery, q)
	}
	if p := form.Get(search.ParamPage); p != "" {
		current.Set(search.ParamPage, p)
	}

	body, err := h.renderList(c, current, state)
	if err != nil {
		renderError(c, h.renderer, err, "Failed to fetch invoices.")
		return
	}
	status := http.StatusOK
	if state.Failed() {
		status = http.StatusInternalServerError
	}
	c.Data(status, view.ContentType, body)
}

func (h *InvoiceHandler) renderList(c *gin.Context, query url.Values, deleteState model.FormState) ([]byte, error) {
	ctx := c.Request.Context()
	state := search.ParseState(query)

	totalPages, err := h.facade.InvoicePages(ctx, state.Query)
	if err != nil {
		return nil, err
	}
	rows, err := h.facade.Invoices(ctx, state)
	if err != nil {
		return nil, err
	}

	page := view.InvoicesPage{
		Layout:      view.Layout{Title: "Invoices"},
		Query:       state.Query,
		Page:        state.Page,
		TotalPages:  totalPages,
		Rows:        rows,
		DeleteState: deleteState,
	}
	page.Links = lo.Map(search.PaginationItems(state.Page, totalPages), func(n int, _ int) view.PageLink {
		if n == search.Ellipsis {
			return view.PageLink{}
		}
		return view.PageLink{Page: n, URL: search.PageURL(usecase.InvoicesPath, query, n), Current: n == state.Page}
	})
	if state.Page > 1 {
		page.PrevURL = search.PageURL(usecase.InvoicesPath, query, state.Page-1)
	}
	if state.Page < totalPages {
		page.NextURL = search.PageURL(usecase.InvoicesPath, query, state.Page+1)
	}
	return h.renderer.RenderBytes(view.PageInvoices, page)
}

func (h *InvoiceHandler) renderForm(c *gin.Context, status int, page view.InvoiceFormPage, invoice model.InvoiceForm, amount string, state model.FormState) {
	customers, err := h.facade.Customers(c.Request.Context())
	if err != nil {
		renderError(c, h.renderer, err, "Failed to fetch customers.")
		return
	}
	page.Customers = customers
	page.Invoice = invoice
	page.Amount = amount
	page.State = state
	render(c, h.renderer, status, view.PageInvoiceForm, page)
}

func createFormPage() view.InvoiceFormPage {
	return view.InvoiceFormPage{
		Layout: view.Layout{Title: "Create Invoice"},
		Action: usecase.InvoicesPath + "/create",
		Submit: "Create Invoice",
	}
}

func editFormPage(id string) view.InvoiceFormPage {
	return view.InvoiceFormPage{
		Layout: view.Layout{Title: "Edit Invoice"},
		Action: usecase.InvoicesPath + "/" + url.PathEscape(id) + "/edit",
		Submit: "Edit Invoice",
	}
}

func submitted(form url.Values, id string) model.InvoiceForm {
	return model.InvoiceForm{
		ID:         id,
		CustomerID: form.Get(schema.FieldCustomerID),
		Status:     model.InvoiceStatus(form.Get(schema.FieldStatus)),
	}
}

// failedStatus maps a rejected form to 422 and a storage failure to 500.
func failedStatus(state model.FormState) int {
	if len(state.Errors) > 0 {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
