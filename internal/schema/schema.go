// Package schema validates submitted invoice and credential forms.
package schema

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/invoices-dashboard/internal/domain/model"
)

// Form field names.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldEmail      = "email"
	FieldPassword   = "password"
)

// Field messages shown next to the offending input.
const (
	MsgCustomer      = "Please select a customer."
	MsgAmount        = "Please enter an amount greater than $0."
	MsgAmountTooHigh = "Please enter a smaller amount."
	MsgStatus        = "Please select an invoice status."
	MsgEmail         = "Please enter a valid email address."
	MsgPassword      = "Password must be at least 6 characters."
)

// ValidationError lists violated constraints per form field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// AsValidationError extracts *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

type invoiceForm struct {
	CustomerID string `form:"customerId" validate:"required"`
	Amount     string `form:"amount" validate:"positive_amount,minor_units"`
	Status     string `form:"status" validate:"oneof=pending paid"`
}

type credentialsForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=6"`
}

var messages = map[string]map[string]string{
	FieldCustomerID: {"": MsgCustomer},
	FieldAmount:     {"": MsgAmount, "minor_units": MsgAmountTooHigh},
	FieldStatus:     {"": MsgStatus},
	FieldEmail:      {"": MsgEmail},
	FieldPassword:   {"": MsgPassword},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	mustRegister(v, "positive_amount", func(fl validator.FieldLevel) bool {
		_, state := minorUnits(fl.Field().String())
		return state != amountInvalid
	})
	mustRegister(v, "minor_units", func(fl validator.FieldLevel) bool {
		_, state := minorUnits(fl.Field().String())
		return state != amountTooLarge
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateEmail checks a bare address such as "user@nextmail.com" and returns it
// trimmed. Display-name forms are rejected.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", &ValidationError{Fields: map[string][]string{FieldEmail: {MsgEmail}}}
	}
	return email, nil
}

// ValidateInvoice checks the invoice form fields and converts the amount to minor units.
// Identifier and date are never taken from the form.
func ValidateInvoice(form url.Values) (model.InvoiceInput, error) {
	in := invoiceForm{
		CustomerID: strings.TrimSpace(form.Get(FieldCustomerID)),
		Amount:     strings.TrimSpace(form.Get(FieldAmount)),
		Status:     strings.TrimSpace(form.Get(FieldStatus)),
	}
	if err := check(in); err != nil {
		return model.InvoiceInput{}, err
	}

	cents, _ := minorUnits(in.Amount)
	return model.InvoiceInput{
		CustomerID: in.CustomerID,
		Amount:     cents,
		Status:     model.InvoiceStatus(in.Status),
	}, nil
}

// ValidateCredentials checks the login form shape.
func ValidateCredentials(form url.Values) (model.Credentials, error) {
	in := credentialsForm{
		Email:    strings.TrimSpace(form.Get(FieldEmail)),
		Password: form.Get(FieldPassword),
	}
	if err := check(in); err != nil {
		return model.Credentials{}, err
	}
	return model.Credentials{Email: in.Email, Password: in.Password}, nil
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Fields: make(map[string][]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		field := fe.Field()
		verr.Fields[field] = append(verr.Fields[field], message(field, fe.Tag()))
	}
	return verr
}

func message(field, tag string) string {
	byTag := messages[field]
	if msg, ok := byTag[tag]; ok {
		return msg
	}
	return byTag[""]
}

type amountState int

const (
	amountOK amountState = iota
	amountInvalid
	amountTooLarge
)

const (
	maxAmountLen      = 64
	maxAmountExponent = 20
	minAmountExponent = -200
)

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	hundred       = decimal.NewFromInt(100)
)

// minorUnits converts a submitted amount to cents. Amounts that are not
// numbers, not positive or below one cent are invalid.
func minorUnits(raw string) (int64, amountState) {
	if raw == "" || len(raw) > maxAmountLen {
		return 0, amountInvalid
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.Sign() <= 0 || d.Exponent() < minAmountExponent {
		return 0, amountInvalid
	}
	if d.Exponent() > maxAmountExponent {
		return 0, amountTooLarge
	}

	cents := MinorUnits(d)
	switch {
	case cents.GreaterThan(maxMinorUnits):
		return 0, amountTooLarge
	case cents.Sign() <= 0:
		// 0.004 rounds to zero cents; stored amounts must stay positive.
		return 0, amountInvalid
	default:
		return cents.IntPart(), amountOK
	}
}

// MinorUnits multiplies a currency amount by 100 and rounds half away from zero.
func MinorUnits(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Round(0)
}

// FormatMinorUnits renders cents as a plain decimal amount, e.g. 1050 as "10.50".
func FormatMinorUnits(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
