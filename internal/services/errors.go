package services

import (
	"errors"
	"fmt"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"
)

// Error categories. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrExpired           = errors.New("expired")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSignatureInvalid  = errors.New("signature invalid")
	ErrNotApprovable     = errors.New("request is not approvable")
)

var (
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrPaymentNotFound     = fmt.Errorf("payment %w", ErrNotFound)
	ErrDeviceNotFound      = fmt.Errorf("device %w", ErrNotFound)

	ErrAccountNotActive     = fmt.Errorf("%w: account is not active", ErrInvalidState)
	ErrNonZeroBalance       = fmt.Errorf("%w: account balance must be zero", ErrInvalidState)
	ErrPaymentNotModifiable = fmt.Errorf("%w: payment can no longer be modified", ErrInvalidState)
	ErrPaymentNotPending    = fmt.Errorf("%w: payment is not pending", ErrInvalidState)
	ErrApprovalNotPending   = fmt.Errorf("%w: approval request is not pending", ErrInvalidState)
	ErrNoActiveDevice       = fmt.Errorf("%w: no active mobile device", ErrInvalidState)
	ErrDeviceNotActive      = fmt.Errorf("%w: device is not active", ErrInvalidState)

	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidIBAN          = fmt.Errorf("%w: invalid IBAN", ErrValidation)
	ErrInvalidExecutionType = fmt.Errorf("%w: invalid execution type", ErrValidation)
	ErrInvalidExecutionDate = fmt.Errorf("%w: execution date must be today or later", ErrValidation)
	ErrInvalidInterestRate  = fmt.Errorf("%w: interest rate must be in [0, 1)", ErrValidation)
	ErrInvalidCurrency      = fmt.Errorf("%w: currency must be a three-letter code", ErrValidation)
	ErrInvalidPublicKey     = fmt.Errorf("%w: public key must be an RSA key in PEM or base64 DER form", ErrValidation)
	ErrInvalidAccountName   = fmt.Errorf("%w: account name is required", ErrValidation)
	ErrNothingToUpdate      = fmt.Errorf("%w: no changes requested", ErrValidation)
	ErrNoteTooLong          = fmt.Errorf("%w: note is too long", ErrValidation)
	ErrMessageTooLong       = fmt.Errorf("%w: message is too long", ErrValidation)
	ErrInvalidEntryKind     = fmt.Errorf("%w: entry kind does not match ledger operation", ErrValidation)

	// ErrPaymentFailed means the payment was persisted as FAILED. The cause
	// is wrapped alongside it.
	ErrPaymentFailed = errors.New("payment execution failed")

	ErrIBANGeneration = errors.New("failed to generate a unique IBAN")
)

// translateRepoError maps repository and model sentinels onto this
// package's errors. Unknown errors are returned unchanged.
func translateRepoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, repositories.ErrPaymentFailed) {
		return fmt.Errorf("%w: %w", ErrPaymentFailed, translateRepoError(paymentFailureCause(err)))
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repositories.ErrTransactionNotFound):
		return ErrTransactionNotFound
	case errors.Is(err, repositories.ErrPaymentNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, repositories.ErrDeviceNotFound):
		return ErrDeviceNotFound
	case errors.Is(err, repositories.ErrMembershipNotFound):
		return ErrForbidden
	case errors.Is(err, repositories.ErrInsufficientFunds), errors.Is(err, models.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, repositories.ErrAccountNotActive), errors.Is(err, models.ErrAccountNotActive):
		return ErrAccountNotActive
	case errors.Is(err, repositories.ErrNonZeroBalance), errors.Is(err, models.ErrNonZeroBalance):
		return ErrNonZeroBalance
	case errors.Is(err, repositories.ErrInvalidAmount), errors.Is(err, models.ErrNonPositiveAmount):
		return ErrInvalidAmount
	case errors.Is(err, repositories.ErrPaymentNotModifiable):
		return ErrPaymentNotModifiable
	case errors.Is(err, repositories.ErrPaymentNotPending):
		return ErrPaymentNotPending
	case errors.Is(err, repositories.ErrApprovalNotPending):
		return ErrApprovalNotPending
	case errors.Is(err, repositories.ErrNoActiveDevice):
		return ErrNoActiveDevice
	case errors.Is(err, repositories.ErrDeviceNotActive):
		return ErrDeviceNotActive
	case errors.Is(err, repositories.ErrInvalidEntryKind):
		return ErrInvalidEntryKind
	case errors.Is(err, models.ErrInvalidIBAN):
		return ErrInvalidIBAN
	case errors.Is(err, models.ErrNoteTooLong):
		return ErrNoteTooLong
	default:
		return err
	}
}

// paymentFailureCause picks the refusal cause out of the ledger's
// "ErrPaymentFailed: cause" error.
func paymentFailureCause(err error) error {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range multi.Unwrap() {
			if !errors.Is(inner, repositories.ErrPaymentFailed) {
				return inner
			}
		}
	}
	return errors.New(err.Error())
}
