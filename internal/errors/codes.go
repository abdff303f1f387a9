package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken           ErrorCode = "AUTH_001"
	AuthInvalidToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInsufficientPermission ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidAmount ErrorCode = "VALIDATION_004"
	ValidationInvalidIBAN   ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
	ValidationNothingToDo   ErrorCode = "VALIDATION_007"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound              ErrorCode = "ACCOUNT_001"
	AccountNotActive             ErrorCode = "ACCOUNT_002"
	AccountInsufficientFunds     ErrorCode = "ACCOUNT_003"
	AccountNonZeroBalance        ErrorCode = "ACCOUNT_004"
	AccountOperationNotPermitted ErrorCode = "ACCOUNT_005"
	AccountUserNotFound          ErrorCode = "ACCOUNT_006"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound ErrorCode = "TRANSACTION_001"
)

// Payment error codes (PAYMENT_*)
const (
	PaymentNotFound        ErrorCode = "PAYMENT_001"
	PaymentNotModifiable   ErrorCode = "PAYMENT_002"
	PaymentNotPending      ErrorCode = "PAYMENT_003"
	PaymentExecutionFailed ErrorCode = "PAYMENT_004"
)

// Approval error codes (APPROVAL_*)
const (
	ApprovalNotApprovable ErrorCode = "APPROVAL_001"
	ApprovalNotPending    ErrorCode = "APPROVAL_002"
	ApprovalActionFailed  ErrorCode = "APPROVAL_003"
)

// Device error codes (DEVICE_*)
const (
	DeviceNotFound         ErrorCode = "DEVICE_001"
	DeviceNoActiveDevice   ErrorCode = "DEVICE_002"
	DeviceNotActive        ErrorCode = "DEVICE_003"
	DeviceInvalidPublicKey ErrorCode = "DEVICE_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemJobRunning         ErrorCode = "SYSTEM_005"
	SystemUnexpectedError    ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthMissingToken:           "Authorization token is required",
	AuthInvalidToken:           "Invalid authorization token",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidAmount: "Amount must be a positive decimal",
	ValidationInvalidIBAN:   "Invalid IBAN",
	ValidationInvalidDate:   "Invalid date or date range",
	ValidationNothingToDo:   "No changes requested",

	AccountNotFound:              "Account not found",
	AccountNotActive:             "Account is closed",
	AccountInsufficientFunds:     "Insufficient account balance",
	AccountNonZeroBalance:        "Account balance must be zero to close the account",
	AccountOperationNotPermitted: "Account operation not permitted",
	AccountUserNotFound:          "User not found",

	TransactionNotFound: "Transaction not found",

	PaymentNotFound:        "Payment not found",
	PaymentNotModifiable:   "Payment can no longer be modified",
	PaymentNotPending:      "Payment is not pending",
	PaymentExecutionFailed: "Payment execution failed",

	ApprovalNotApprovable: "Request is not approvable",
	ApprovalNotPending:    "Approval request has already been resolved",
	ApprovalActionFailed:  "Request was approved but the action could not be completed",

	DeviceNotFound:         "Mobile device not found",
	DeviceNoActiveDevice:   "No active mobile device registered",
	DeviceNotActive:        "Mobile device is not active",
	DeviceInvalidPublicKey: "Public key must be an RSA key in PEM or base64 DER form",

	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemJobRunning:         "Job is already running",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
