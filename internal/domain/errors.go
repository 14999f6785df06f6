package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"oneof":    "Must be one of the allowed values",
	"datetime": "Must be a date in YYYY-MM-DD format",
	"dive":     "Contains an invalid item",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeBadRequest = "bad_request"
	ErrorTypeConflict   = "conflict"
	ErrorTypeStore      = "store_error"
	ErrorTypeInternal   = "internal_error"
)

// ErrRecordNotFound is matched with errors.Is on any store lookup miss
var ErrRecordNotFound = errors.New("record not found")

// ErrDuplicateRecord is matched with errors.Is on unique constraint violations
var ErrDuplicateRecord = errors.New("duplicate record")

// ErrRecordReferenced is matched with errors.Is when a delete or insert breaks
// a foreign key, e.g. removing a lawyer that cases still point at
var ErrRecordReferenced = errors.New("record is referenced by other records")

// StoreError carries a record store failure. Message is the store's own text
// and is what notifications show to the user.
type StoreError struct {
	Op      string
	Table   Table
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err for the given operation on table
func NewStoreError(op string, table Table, err error) *StoreError {
	msg := err.Error()
	switch {
	case errors.Is(err, ErrRecordNotFound):
		msg = fmt.Sprintf("%s: record not found", table)
	case errors.Is(err, ErrDuplicateRecord):
		msg = fmt.Sprintf("%s: a record with the same unique value already exists", table)
	}
	return &StoreError{Op: op, Table: table, Message: msg, Err: err}
}

// ValidationError reports input rejected before reaching the store
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// NewValidationError creates a ValidationError for a single field. An empty
// field name produces a message-only error.
func NewValidationError(message, field, detail string) *ValidationError {
	v := &ValidationError{Message: message}
	if field != "" {
		v.Fields = map[string]string{field: detail}
	}
	return v
}

// ErrorMessage extracts the text shown to users: the store message for store
// failures, otherwise the error text itself.
func ErrorMessage(err error) string {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Message
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	return err.Error()
}
