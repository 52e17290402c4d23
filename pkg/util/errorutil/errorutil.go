package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// StoreErrorKind classifies persistence failures so callers can decide
// whether to surface, reject, or refresh schema capabilities.
type StoreErrorKind string

const (
	StoreConnectionFailure   StoreErrorKind = "CONNECTION_FAILURE"
	StoreConstraintViolation StoreErrorKind = "CONSTRAINT_VIOLATION"
	StoreNotFound            StoreErrorKind = "NOT_FOUND"
	StoreSchemaIncompatible  StoreErrorKind = "SCHEMA_INCOMPATIBLE"
)

// Error codes surfaced in the API error envelope.
const (
	CodeValidation       = "VALIDATION_FAILED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	StoreKind  StoreErrorKind
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError marks bad or missing caller input; always recoverable
// by retrying with corrected input.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

// NewPermissionDenied marks a failed role or ownership check. Never retried.
func NewPermissionDenied(message string) error {
	return NewDomainError(CodePermissionDenied, message, http.StatusForbidden, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

// NewStoreError wraps a persistence failure with its kind.
func NewStoreError(kind StoreErrorKind, message string, err error) error {
	status := http.StatusInternalServerError
	switch kind {
	case StoreNotFound:
		status = http.StatusNotFound
	case StoreConstraintViolation:
		status = http.StatusConflict
	case StoreConnectionFailure, StoreSchemaIncompatible:
		status = http.StatusServiceUnavailable
	}
	return &DomainError{
		Code:       "STORE_" + string(kind),
		Message:    message,
		HTTPStatus: status,
		StoreKind:  kind,
		Err:        err,
	}
}

// NewNotFound reports a missing entity as a store error.
func NewNotFound(resource string) error {
	return NewStoreError(StoreNotFound, fmt.Sprintf("%s not found", resource), nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// StoreKindOf extracts the store-error kind, or "" when err is not a
// store error.
func StoreKindOf(err error) StoreErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.StoreKind
	}
	return ""
}

// MapStoreError classifies raw pgx errors into the store taxonomy so no
// unlabeled failure escapes the repository layer.
func MapStoreError(resource string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound(resource)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23505", "23514":
			return NewStoreError(StoreConstraintViolation, fmt.Sprintf("%s constraint violated", resource), err)
		case "42703", "42P01":
			return NewStoreError(StoreSchemaIncompatible, fmt.Sprintf("%s schema out of date", resource), err)
		}
	}
	return NewStoreError(StoreConnectionFailure, fmt.Sprintf("%s store unavailable", resource), err)
}

// ToDomainError converts generic errors to DomainError for the HTTP layer.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
