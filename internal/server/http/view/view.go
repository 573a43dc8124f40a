// Package view renders dashboard pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
	"github.com/polkiloo/invoices-dashboard/internal/schema"
	"github.com/polkiloo/invoices-dashboard/internal/search"
)

// Page template names.
const (
	PageHome        = "home"
	PageLogin       = "login"
	PageDashboard   = "dashboard"
	PageInvoices    = "invoices"
	PageInvoiceForm = "invoice_form"
	PageNotFound    = "not_found"
	PageError       = "error"
)

// ContentType is the media type of rendered pages.
const ContentType = "text/html; charset=utf-8"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes named page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes page name to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// RenderBytes renders page name into memory so a failed render never sends a partial page.
func (r *Renderer) RenderBytes(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Funcs returns template helpers.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"currency":    FormatCurrency,
		"amountInput": formatAmountInput,
		"date":        FormatDate,
		"isEllipsis":  func(n int) bool { return n == search.Ellipsis },
		"fieldErrors": func(s model.FormState, field string) []string { return s.FieldErrors(field) },
		"initials":    initials,
		"searchWait":  func() int64 { return search.DefaultWait.Milliseconds() },
	}
}

// FormatCurrency renders cents as US dollars, e.g. 123456 as "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	plain := schema.FormatMinorUnits(cents)
	whole, frac, _ := strings.Cut(plain, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// FormatDate renders a calendar date as "Jun 1, 2024".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func formatAmountInput(cents int64) string {
	if cents == 0 {
		return ""
	}
	return schema.FormatMinorUnits(cents)
}

func initials(name string) string {
	words := lo.Slice(strings.Fields(name), 0, 2)
	return strings.Join(lo.Map(words, func(w string, _ int) string {
		return strings.ToUpper(string([]rune(w)[:1]))
	}), "")
}
