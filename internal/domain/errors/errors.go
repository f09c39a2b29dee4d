package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")

	// Funding ledger rule violations
	ErrProjectNotActive      = errors.New("project is not active")
	ErrDeadlinePassed        = errors.New("funding deadline has passed")
	ErrBelowMinInvestment    = errors.New("amount is below the minimum investment")
	ErrAccreditationRequired = errors.New("project is restricted to accredited investors")
	ErrInvestmentNotPending  = errors.New("only pending investments can be cancelled")

	// External service failures
	ErrPaymentFailed = errors.New("payment failed")
	ErrRefundFailed  = errors.New("refund failed")
	ErrUploadFailed  = errors.New("upload failed")
)

// AppError represents an application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", message, ErrInvalidInput)
}

func BusinessRule(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, "BUSINESS_RULE", message, err)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

func ExternalService(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, "EXTERNAL_SERVICE", message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL", "internal server error", err)
}
