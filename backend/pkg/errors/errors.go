package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound represents a missing entity
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation represents rejected input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConflict represents domain conditions not covered by the other types
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeStore represents graph store transport/protocol errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeDecode represents a query row that could not be mapped into an entity
	ErrorTypeDecode ErrorType = "decode"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// EntityKind names the aggregate an error refers to
type EntityKind string

const (
	EntityEvent        EntityKind = "event"
	EntityUser         EntityKind = "user"
	EntityKeyword      EntityKind = "keyword"
	EntityRegistration EntityKind = "registration"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind reports the error category. It is promoted to every typed wrapper.
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// Describe returns the message without the type prefix or wrapped cause
func (e *BaseError) Describe() string {
	return e.Message
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Not Found Errors

// ErrNotFound is returned when an event or user does not exist
type ErrNotFound struct {
	*BaseError
	Entity EntityKind
	Key    string
}

// NewNotFound creates a not-found error for an arbitrary entity key
func NewNotFound(entity EntityKind, key string) *ErrNotFound {
	return &ErrNotFound{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", entity, key), nil),
		Entity:    entity,
		Key:       key,
	}
}

// NewEventNotFound is returned when no event carries the given id
func NewEventNotFound(id int64) *ErrNotFound {
	return NewNotFound(EntityEvent, fmt.Sprintf("%d", id))
}

// NewUserNotFound is returned when no user carries the given name
func NewUserNotFound(name string) *ErrNotFound {
	return NewNotFound(EntityUser, name)
}

// Validation Errors

// ErrValidationFailed is returned when input is rejected before touching the store
type ErrValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewValidationFailed(field, reason string) *ErrValidationFailed {
	msg := reason
	if field != "" {
		msg = fmt.Sprintf("%s: %s", field, reason)
	}
	return &ErrValidationFailed{
		BaseError: NewBaseError(ErrorTypeValidation, msg, nil),
		Field:     field,
		Reason:    reason,
	}
}

// Conflict Errors

// ErrConflict covers domain failures such as "cannot create event"
type ErrConflict struct {
	*BaseError
	Entity EntityKind
	Reason string
}

func NewConflict(entity EntityKind, reason string, err error) *ErrConflict {
	return &ErrConflict{
		BaseError: NewBaseError(ErrorTypeConflict, fmt.Sprintf("%s: %s", entity, reason), err),
		Entity:    entity,
		Reason:    reason,
	}
}

// Store Errors

// ErrStoreFailed wraps a transport or protocol failure reported by the graph store
type ErrStoreFailed struct {
	*BaseError
	Operation string
}

func NewStoreFailed(operation string, err error) *ErrStoreFailed {
	return &ErrStoreFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// ErrDecodeFailed is returned when a result row does not match the entity shape
type ErrDecodeFailed struct {
	*BaseError
	Entity EntityKind
	Field  string
}

func NewDecodeFailed(entity EntityKind, field, reason string) *ErrDecodeFailed {
	return &ErrDecodeFailed{
		BaseError: NewBaseError(ErrorTypeDecode, fmt.Sprintf("cannot decode %s.%s: %s", entity, field, reason), nil),
		Entity:    entity,
		Field:     field,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type kinded interface {
	Kind() ErrorType
	Describe() string
}

// TypeOf returns the category of the first typed error in the chain, or "" if none.
func TypeOf(err error) ErrorType {
	var k kinded
	if stderrors.As(err, &k) {
		return k.Kind()
	}
	return ""
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}

// IsNotFound reports whether err signals a missing entity
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// StatusCode maps an error to the HTTP status class the presentation layer should use
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch TypeOf(err) {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation, ErrorTypeConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the message shown to API clients. Store and decode failures
// collapse to a generic message.
func PublicMessage(err error) string {
	switch TypeOf(err) {
	case ErrorTypeStore, ErrorTypeDecode, "":
		return "internal server error"
	}
	var k kinded
	if stderrors.As(err, &k) {
		return k.Describe()
	}
	return err.Error()
}
