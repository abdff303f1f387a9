package handlers

import (
	"net/http"
	"strings"
	"time"

	"ledger-engine/internal/dto"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"
	"ledger-engine/internal/services"
	"ledger-engine/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PaymentHandler stages payment changes for mobile approval and serves
// payment reads. The admin variants apply changes directly.
type PaymentHandler struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentHandler(paymentService services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePayment stages a new payment
// @Summary Create a payment
// @Description The payment is created once the returned code is approved on the mobile device. INSTANT payments execute on approval.
// @Tags Payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRequest true "Payment details"
// @Success 202 {object} dto.ChallengeResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid payment"
// @Failure 403 {object} errors.ErrorResponse "ACCOUNT_005 - No write access to the account"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_002 - Account closed or DEVICE_002 - No active device"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Insufficient funds for an INSTANT payment"
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreatePaymentRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	code, err := h.paymentService.StagePaymentCreation(c.Request().Context(), actor, paymentInput(req))
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusAccepted, dto.ChallengeResponse{
		VerificationCode: code,
		Kind:             models.ApprovalKindPaymentCreate,
		Message:          "Approve the payment on your mobile device",
	})
}

// UpdatePayment stages changes to a pending payment
// @Router /payments/{paymentId} [patch]
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	changes, ok, err := h.bindChanges(c)
	if !ok {
		return err
	}

	code, err := h.paymentService.StagePaymentUpdate(c.Request().Context(), actor, changes)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusAccepted, dto.ChallengeResponse{
		VerificationCode: code,
		Kind:             models.ApprovalKindPaymentUpdate,
		Message:          "Approve the change on your mobile device",
	})
}

// CancelPayment stages the cancellation of a pending payment
// @Router /payments/{paymentId} [delete]
func (h *PaymentHandler) CancelPayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	paymentID, ok, err := parseUUIDParam(c, "paymentId")
	if !ok {
		return err
	}

	code, err := h.paymentService.StagePaymentCancellation(c.Request().Context(), actor, paymentID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusAccepted, dto.ChallengeResponse{
		VerificationCode: code,
		Kind:             models.ApprovalKindPaymentCancel,
		Message:          "Approve the cancellation on your mobile device",
	})
}

// GetPayment returns a payment of an account the caller is a member of
// @Router /payments/{paymentId} [get]
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	paymentID, ok, err := parseUUIDParam(c, "paymentId")
	if !ok {
		return err
	}

	payment, err := h.paymentService.GetPayment(c.Request().Context(), actor, paymentID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// ListPayments lists an account's payments, optionally filtered by status and type
// @Router /accounts/{accountId}/payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	offset, limit := getPagination(c)
	payments, total, err := h.paymentService.ListPayments(c.Request().Context(), actor, models.PaymentFilters{
		AccountID:     accountID,
		Status:        strings.ToUpper(c.QueryParam("status")),
		ExecutionType: strings.ToUpper(c.QueryParam("execution_type")),
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PaymentListResponse{
		Payments: payments,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// ListPendingPayments lists the payments still waiting for execution
// @Router /accounts/{accountId}/payments/pending [get]
func (h *PaymentHandler) ListPendingPayments(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	payments, err := h.paymentService.ListPendingPayments(c.Request().Context(), actor, accountID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PaymentListResponse{
		Payments: payments,
		Total:    int64(len(payments)),
		Limit:    len(payments),
	})
}

// AdminCreatePayment creates a payment without mobile approval
// @Router /admin/payments [post]
func (h *PaymentHandler) AdminCreatePayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreatePaymentRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	payment, err := h.paymentService.AdminCreatePayment(c.Request().Context(), actor, paymentInput(req))
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// AdminUpdatePayment applies changes to a pending payment directly
// @Router /admin/payments/{paymentId} [patch]
func (h *PaymentHandler) AdminUpdatePayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	changes, ok, err := h.bindChanges(c)
	if !ok {
		return err
	}

	payment, err := h.paymentService.AdminUpdatePayment(c.Request().Context(), actor, changes)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}

// AdminCancelPayment cancels a pending payment directly
// @Router /admin/payments/{paymentId} [delete]
func (h *PaymentHandler) AdminCancelPayment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	paymentID, ok, err := parseUUIDParam(c, "paymentId")
	if !ok {
		return err
	}

	if err := h.paymentService.AdminCancelPayment(c.Request().Context(), actor, paymentID); err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Payment cancelled"})
}

func (h *PaymentHandler) bindChanges(c echo.Context) (models.PaymentUpdatePayload, bool, error) {
	paymentID, ok, err := parseUUIDParam(c, "paymentId")
	if !ok {
		return models.PaymentUpdatePayload{}, false, err
	}

	var req dto.UpdatePaymentRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return models.PaymentUpdatePayload{}, false, err
	}

	changes := models.PaymentUpdatePayload{
		PaymentID:    paymentID,
		ReceiverIBAN: req.ReceiverIBAN,
		Message:      req.Message,
		Note:         req.Note,
	}
	if req.Amount != nil {
		amount := decimal.RequireFromString(*req.Amount)
		changes.Amount = &amount
	}
	if req.ExecutionDate != nil {
		changes.ExecutionDate = parseDate(*req.ExecutionDate)
	}
	return changes, true, nil
}

// paymentInput converts a validated request into the service input
func paymentInput(req dto.CreatePaymentRequest) services.PaymentInput {
	input := services.PaymentInput{
		AccountID:     uuid.MustParse(req.AccountID),
		ReceiverIBAN:  req.ReceiverIBAN,
		Amount:        decimal.RequireFromString(req.Amount),
		Message:       req.Message,
		Note:          req.Note,
		ExecutionType: strings.ToUpper(req.ExecutionType),
	}
	if req.ExecutionDate != "" {
		input.ExecutionDate = parseDate(req.ExecutionDate)
	}
	return input
}

// parseDate reads a validated calendar date as midnight UTC, the form in
// which execution dates are stored.
func parseDate(raw string) *time.Time {
	t, err := time.Parse(validation.DateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}
