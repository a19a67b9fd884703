// Package validation holds the form checks run before a request is sent.
// Every check is a pure function returning a Result; nothing here renders
// messages or talks to the network.
package validation

import (
	"strings"

	"github.com/dmitrijs2005/shopadmin/internal/common"
)

// FieldError is one failed check. Field is empty for form-level errors.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failed checks of one form, in the order they ran.
type Result struct {
	Errors []FieldError
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a passing result and *Error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Fields: r.Errors}
}

// Message returns the first message reported for field.
func (r Result) Message(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

func (r *Result) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

func (r *Result) require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		r.add(field, msg)
	}
}

// Error is a failed Result surfaced as an error. It matches
// common.ErrValidation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *Error) Unwrap() error {
	return common.ErrValidation
}
