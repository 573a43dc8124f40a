package model

// FormState carries the outcome of a mutation back to the form that submitted it.
// The zero value means the mutation succeeded.
type FormState struct {
	Errors  map[string][]string
	Message string
}

// Failed reports whether the state describes a rejected mutation.
func (s FormState) Failed() bool {
	return s.Message != "" || len(s.Errors) > 0
}

// FieldErrors returns messages recorded for the given form field.
func (s FormState) FieldErrors(field string) []string {
	if s.Errors == nil {
		return nil
	}
	return s.Errors[field]
}
