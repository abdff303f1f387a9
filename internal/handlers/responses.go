package handlers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"ledger-engine/internal/errors"
	"ledger-engine/internal/services"
	"ledger-engine/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// 1. SendError - client and business rule errors with a known code
//    SendError(c, errors.ValidationGeneral, errors.WithDetails("..."))
//
// 2. SendServiceError - any error returned by the services package. The
//    service error categories are mapped onto API codes; anything unknown is
//    treated as a system error.
//
// 3. SendSystemError - internal failures. The cause is logged with the trace
//    ID and never sent to the client.
//
// Handlers never return raw errors or build error JSON themselves.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	errorResponse := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError logs the internal error and sends a generic response
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, cause := errors.WrapSystemError(err, traceID)
	slog.ErrorContext(c.Request().Context(), "request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", cause,
	)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendValidationError renders validator errors field by field, falling back
// to a single detail line for other bind or validation failures.
func SendValidationError(c echo.Context, err error) error {
	if fields := validation.FieldErrors(err); fields != nil {
		errorResponse := errors.NewValidationError(fields, getTraceID(c))
		return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
	}
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
}

// SendServiceError maps an error from the services package onto an API error
func SendServiceError(c echo.Context, err error) error {
	code, ok := serviceErrorCode(err)
	if !ok {
		return SendSystemError(c, err)
	}

	// Validation and payment failures carry a message worth showing.
	if stderrors.Is(err, services.ErrValidation) || stderrors.Is(err, services.ErrPaymentFailed) {
		return SendError(c, code, errors.WithDetails(err.Error()))
	}
	return SendError(c, code)
}

func serviceErrorCode(err error) (errors.ErrorCode, bool) {
	checks := []struct {
		target error
		code   errors.ErrorCode
	}{
		// Every Inspect/Resolve refusal looks the same to the device.
		{services.ErrNotApprovable, errors.ApprovalNotApprovable},
		{services.ErrSignatureInvalid, errors.ApprovalNotApprovable},
		{services.ErrExpired, errors.ApprovalNotApprovable},
		{services.ErrApprovalNotPending, errors.ApprovalNotPending},

		{services.ErrAccountNotFound, errors.AccountNotFound},
		{services.ErrUserNotFound, errors.AccountUserNotFound},
		{services.ErrTransactionNotFound, errors.TransactionNotFound},
		{services.ErrPaymentNotFound, errors.PaymentNotFound},
		{services.ErrDeviceNotFound, errors.DeviceNotFound},
		{services.ErrForbidden, errors.AccountOperationNotPermitted},

		{services.ErrPaymentFailed, errors.PaymentExecutionFailed},
		{services.ErrInsufficientFunds, errors.AccountInsufficientFunds},

		{services.ErrAccountNotActive, errors.AccountNotActive},
		{services.ErrNonZeroBalance, errors.AccountNonZeroBalance},
		{services.ErrPaymentNotModifiable, errors.PaymentNotModifiable},
		{services.ErrPaymentNotPending, errors.PaymentNotPending},
		{services.ErrNoActiveDevice, errors.DeviceNoActiveDevice},
		{services.ErrDeviceNotActive, errors.DeviceNotActive},

		{services.ErrInvalidAmount, errors.ValidationInvalidAmount},
		{services.ErrInvalidIBAN, errors.ValidationInvalidIBAN},
		{services.ErrInvalidExecutionDate, errors.ValidationInvalidDate},
		{services.ErrInvalidPublicKey, errors.DeviceInvalidPublicKey},
		{services.ErrNothingToUpdate, errors.ValidationNothingToDo},
		{services.ErrValidation, errors.ValidationGeneral},

		{context.DeadlineExceeded, errors.SystemServiceUnavailable},
	}

	for _, check := range checks {
		if stderrors.Is(err, check.target) {
			return check.code, true
		}
	}
	return "", false
}
