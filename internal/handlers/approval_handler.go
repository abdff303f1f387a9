package handlers

import (
	"net/http"

	"ledger-engine/internal/dto"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"
	"ledger-engine/internal/services"

	"github.com/labstack/echo/v4"
)

// ApprovalHandler serves the mobile approval protocol. Inspect and Resolve
// are called by the device without a bearer token: the signed message is the
// credential.
type ApprovalHandler struct {
	approvalService services.ApprovalServiceInterface
}

func NewApprovalHandler(approvalService services.ApprovalServiceInterface) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// Inspect shows the pending request behind a signed "{REQUEST}code" message
// @Summary Inspect an approval request
// @Tags Mobile
// @Accept json
// @Produce json
// @Param request body dto.SignedMessageRequest true "Signed message"
// @Success 200 {object} services.InspectResult
// @Failure 422 {object} errors.ErrorResponse "APPROVAL_001 - Request is not approvable"
// @Router /mobile/approvals/inspect [post]
func (h *ApprovalHandler) Inspect(c echo.Context) error {
	var req dto.SignedMessageRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.approvalService.Inspect(c.Request().Context(), req.SignedMessage)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Resolve approves or rejects a request with a signed "{APPROVE}code" or
// "{REJECT}code" message. An approved request whose action failed is still
// resolved; the failure is reported alongside it.
// @Summary Resolve an approval request
// @Tags Mobile
// @Accept json
// @Produce json
// @Param request body dto.ResolveApprovalRequest true "Signed message and outcome"
// @Success 200 {object} dto.ResolveApprovalResponse
// @Failure 409 {object} errors.ErrorResponse "APPROVAL_002 - Already resolved"
// @Failure 422 {object} errors.ErrorResponse "APPROVAL_001 - Request is not approvable"
// @Router /mobile/approvals/resolve [post]
func (h *ApprovalHandler) Resolve(c echo.Context) error {
	var req dto.ResolveApprovalRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	result, err := h.approvalService.Resolve(c.Request().Context(), req.SignedMessage, req.Outcome)
	if err != nil {
		return SendServiceError(c, err)
	}

	response := dto.ResolveApprovalResponse{Request: result.Request}
	if result.ActionErr != nil {
		response.ActionError = result.ActionErr.Error()
	}
	return c.JSON(http.StatusOK, response)
}

// ListPending returns the caller's unexpired pending requests
// @Router /approvals [get]
func (h *ApprovalHandler) ListPending(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	pending, err := h.approvalService.ListPending(c.Request().Context(), userID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PendingApprovalsResponse{Requests: pending})
}

// CreateGenericChallenge asks the caller to confirm a statement on their device
// @Router /approvals/generic [post]
func (h *ApprovalHandler) CreateGenericChallenge(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.GenericChallengeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	code, err := h.approvalService.CreateChallenge(c.Request().Context(), services.ChallengeInput{
		UserID:    actor.UserID,
		IPAddress: actor.IPAddress,
		Kind:      models.ApprovalKindGeneric,
		Payload:   models.GenericPayload{Description: req.Description},
	})
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusAccepted, dto.ChallengeResponse{
		VerificationCode: code,
		Kind:             models.ApprovalKindGeneric,
		Message:          "Confirm on your mobile device",
	})
}
