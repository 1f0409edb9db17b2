package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so
// errors.Is(err, apperror.ErrDuplicateVoucher()) matches any duplicate error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the AppError code carried by err, or "" when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

const (
	CodeInvalidVoucherFormat = "VCH_001"
	CodeDuplicateVoucher     = "VCH_002"
	CodeInvalidAmount        = "VCH_003"
	CodeUpstreamTimeout      = "UPS_001"
	CodeUpstreamRejected     = "UPS_002"
	CodeUpstreamUnavailable  = "UPS_003"
	CodeUpstreamUnreachable  = "UPS_004"
	CodePersistenceFailure   = "SYS_001"
	CodeConfiguration        = "SYS_004"
	CodeRateLimitExceeded    = "RATE_001"
	CodeValidation           = "REQ_001"
)

// ---- Voucher (VCH) ----

func ErrInvalidVoucherFormat() *AppError {
	return New(CodeInvalidVoucherFormat, "Invalid voucher link format", http.StatusBadRequest)
}

func ErrDuplicateVoucher() *AppError {
	return New(CodeDuplicateVoucher, "Voucher already redeemed", http.StatusConflict)
}

// ErrInvalidAmount is returned when a redeemed voucher reports no positive value.
func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Voucher amount is invalid", http.StatusUnprocessableEntity)
}

// ---- Upstream redemption service (UPS) ----

func ErrUpstreamTimeout(err error) *AppError {
	return Wrap(CodeUpstreamTimeout, "Redemption service timed out", http.StatusGatewayTimeout, err)
}

// ErrUpstreamRejected carries the rejection text reported by the redemption service.
func ErrUpstreamRejected(reason string) *AppError {
	if reason == "" {
		reason = "Voucher redemption was rejected"
	}
	return New(CodeUpstreamRejected, reason, http.StatusUnprocessableEntity)
}

func ErrUpstreamUnavailable(err error) *AppError {
	return Wrap(CodeUpstreamUnavailable, "Redemption service unavailable", http.StatusBadGateway, err)
}

// ErrUpstreamUnreachable means the request never left this process, so the
// voucher was not submitted.
func ErrUpstreamUnreachable(err error) *AppError {
	return Wrap(CodeUpstreamUnreachable, "Redemption service unreachable", http.StatusBadGateway, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrPersistenceFailure(err error) *AppError {
	return Wrap(CodePersistenceFailure, "Internal database error", http.StatusInternalServerError, err)
}

func ErrConfiguration(message string) *AppError {
	return New(CodeConfiguration, message, http.StatusInternalServerError)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodePersistenceFailure, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}
