package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// Error codes used by the envelope renderer and metrics.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeDomainRule       = "DOMAIN_RULE_VIOLATION"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Fixed client-facing messages.
const (
	MsgValidationFailed = "Validation failed"
	MsgNotFound         = "Resource not found"
	MsgEndpointNotFound = "Endpoint not found"
	MsgUnauthenticated  = "Unauthenticated"
	MsgInvalidPayload   = "Invalid request payload"
	MsgInternal         = "An internal server error occurred"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string][]string
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
func NewDomainError(code, message string, status int, details map[string][]string) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports field violations keyed by field name.
func NewValidationError(details map[string][]string) error {
	return NewDomainError(CodeValidationFailed, MsgValidationFailed, http.StatusUnprocessableEntity, details)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

// NewDomainRuleViolation reports a business rule rejection.
func NewDomainRuleViolation(message string) error {
	return NewDomainError(CodeDomainRule, message, http.StatusBadRequest, nil)
}

func NewNotFound(message string) error {
	if message == "" {
		message = MsgNotFound
	}
	return NewDomainError(CodeNotFound, message, http.StatusNotFound, nil)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts any error into a DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(CodeNotFound, MsgNotFound, http.StatusNotFound, nil)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case http.StatusNotFound:
			return NewDomainError(CodeNotFound, MsgEndpointNotFound, http.StatusNotFound, nil)
		case http.StatusMethodNotAllowed:
			return NewDomainError(CodeNotFound, MsgEndpointNotFound, http.StatusMethodNotAllowed, nil)
		case http.StatusUnauthorized:
			return NewDomainError(CodeUnauthorized, MsgUnauthenticated, http.StatusUnauthorized, nil)
		}
		if fiberErr.Code < http.StatusInternalServerError {
			return NewDomainError(CodeBadRequest, fiberErr.Message, fiberErr.Code, nil)
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    MsgInternal,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// ClientMessage returns the message safe to expose to callers. Internal
// failures keep their generic message unless debug is enabled.
func (e *DomainError) ClientMessage(debug bool) string {
	if e.HTTPStatus >= http.StatusInternalServerError && debug && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}
