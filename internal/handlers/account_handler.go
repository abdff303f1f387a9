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

// AccountHandler handles account and transaction history requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
	location       *time.Location
}

// NewAccountHandler creates an account handler. Calendar dates in queries
// are read in loc.
func NewAccountHandler(accountService services.AccountServiceInterface, loc *time.Location) *AccountHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AccountHandler{accountService: accountService, location: loc}
}

// CreateAccount opens an account for the caller
// @Summary Create a new account
// @Tags Accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} models.Account
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body"
// @Failure 403 {object} errors.ErrorResponse "ACCOUNT_005 - Admin-only option used"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_006 - Owner not found"
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateAccountRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	input := services.CreateAccountInput{
		Name:     req.Name,
		Currency: req.Currency,
	}
	if req.OwnerID != "" {
		input.OwnerID = uuid.MustParse(req.OwnerID)
	}
	if req.InterestRate != "" {
		input.InterestRate = decimal.RequireFromString(req.InterestRate)
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), actor, input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, account)
}

// GetAccount returns an account the caller is a member of
// @Summary Get account by ID
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Success 200 {object} models.Account
// @Failure 403 {object} errors.ErrorResponse "ACCOUNT_005 - Not a member of the account"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), actor, accountID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// ListMyAccounts returns every account the caller is a member of
// @Router /accounts [get]
func (h *AccountHandler) ListMyAccounts(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accounts, err := h.accountService.ListAccountsForUser(c.Request().Context(), actor)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    int64(len(accounts)),
		Limit:    len(accounts),
	})
}

// UpdateAccount renames an account or, for admins, changes its rate
// @Router /accounts/{accountId} [patch]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	var req dto.UpdateAccountRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	input := services.UpdateAccountInput{Name: req.Name}
	if req.InterestRate != nil {
		rate := decimal.RequireFromString(*req.InterestRate)
		input.InterestRate = &rate
	}

	account, err := h.accountService.UpdateAccount(c.Request().Context(), actor, accountID, input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// CloseAccount stages the closure of an account. The account is closed once
// the request is approved on the owner's mobile device.
// @Summary Request account closure
// @Tags Accounts
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Success 202 {object} dto.ChallengeResponse
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_004 - Balance is not zero or DEVICE_002 - No active device"
// @Router /accounts/{accountId}/close [post]
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	code, err := h.accountService.StageAccountClosure(c.Request().Context(), actor, accountID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusAccepted, dto.ChallengeResponse{
		VerificationCode: code,
		Kind:             models.ApprovalKindAccountClose,
		Message:          "Approve the closure on your mobile device",
	})
}

// AdminCloseAccount closes an account without a mobile approval
// @Router /admin/accounts/{accountId} [delete]
func (h *AccountHandler) AdminCloseAccount(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	if err := h.accountService.CloseAccount(c.Request().Context(), actor, accountID); err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account closed"})
}

// ListAccounts lists all accounts with optional filters (admin only)
// @Router /admin/accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters := models.AccountFilters{
		Status:   strings.ToUpper(c.QueryParam("status")),
		Currency: strings.ToUpper(c.QueryParam("currency")),
	}
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user_id"))
		}
		filters.UserID = &userID
	}

	offset, limit := getPagination(c)
	accounts, total, err := h.accountService.ListAccounts(c.Request().Context(), actor, filters, offset, limit)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// ListTransactions returns a page of an account's history, newest first
// @Summary List transactions
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param from query string false "Inclusive lower bound (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Exclusive upper bound (YYYY-MM-DD or RFC3339)"
// @Param kind query string false "Transaction kind" Enums(INCOMING, OUTGOING, INTEREST)
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.TransactionListResponse
// @Router /accounts/{accountId}/transactions [get]
func (h *AccountHandler) ListTransactions(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	from, err := parseTimeQuery(c.QueryParam("from"), h.location)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid from"))
	}
	to, err := parseTimeQuery(c.QueryParam("to"), h.location)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid to"))
	}

	offset, limit := getPagination(c)
	transactions, total, err := h.accountService.ListTransactions(c.Request().Context(), actor, accountID, services.TransactionQuery{
		From:   from,
		To:     to,
		Kind:   strings.ToUpper(c.QueryParam("kind")),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Offset:       offset,
		Limit:        limit,
	})
}

// UpdateTransactionNote replaces the private note on a transaction
// @Router /transactions/{transactionId}/note [put]
func (h *AccountHandler) UpdateTransactionNote(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, ok, err := parseUUIDParam(c, "transactionId")
	if !ok {
		return err
	}

	var req dto.UpdateTransactionNoteRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transaction, err := h.accountService.UpdateTransactionNote(c.Request().Context(), actor, transactionID, req.Note)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// parseTimeQuery accepts a calendar date, read as midnight in loc, or an
// RFC3339 timestamp. Empty input yields nil.
func parseTimeQuery(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(validation.DateLayout, raw, loc); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
