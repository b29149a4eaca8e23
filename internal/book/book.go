package book

import (
	"errors"
	"strconv"
	"strings"

	"bookservice/internal/validation"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("validation failed")

// ID identifies a book. IDs are issued from 1 upward and never reused; they
// are rendered as decimal strings wherever they leave the process.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalText renders the id as "1", "2", ... for JSON and YAML.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// ParseID accepts only the canonical decimal form of an issued id, so
// "01", "+1" or " 1" never match a book.
func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	id := ID(n)
	if id.String() != s {
		return 0, false
	}
	return id, true
}

// Book represents a catalog entry.
type Book struct {
	ID     ID     `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Author string `json:"author" yaml:"author"`
}

// SortField names a field List can order by. The zero value leaves the
// result in insertion order.
type SortField string

const (
	SortByID     SortField = "id"
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
)

// Valid reports whether f is one of the known sort fields.
func (f SortField) Valid() bool {
	switch f {
	case SortByID, SortByTitle, SortByAuthor:
		return true
	}
	return false
}

// ParseSortField converts free-form input into a SortField. An empty string
// means no sorting.
func ParseSortField(s string) (SortField, error) {
	if err := check(listInput{SortBy: s}); err != nil {
		return "", err
	}
	return SortField(s), nil
}

// ListQuery defines the filter and order for listing books.
type ListQuery struct {
	Search string
	SortBy SortField
	Desc   bool
}

type createInput struct {
	Title  string `validate:"notblank"`
	Author string `validate:"notblank"`
}

type listInput struct {
	SortBy string `validate:"omitempty,oneof=id title author"`
}

// ValidationError is returned when input is rejected. It unwraps to
// ErrValidation.
type ValidationError struct {
	Details []validation.FieldError `json:"details" yaml:"details"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func check(in interface{}) error {
	if details := validation.ValidateStruct(in); len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}
