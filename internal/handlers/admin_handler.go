package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"ledger-engine/internal/dto"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"
	"ledger-engine/internal/scheduler"
	"ledger-engine/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// JobRunner is the part of the scheduler the admin endpoints drive
type JobRunner interface {
	Statuses() []scheduler.Status
	RunNow(ctx context.Context, name string) error
}

// AdminHandler handles back-office endpoints. Routes are mounted behind
// RequireAdmin; the services check the role again.
type AdminHandler struct {
	ledgerService services.LedgerServiceInterface
	auditService  services.AuditServiceInterface
	userRepo      repositories.UserRepositoryInterface
	jobs          JobRunner
}

func NewAdminHandler(
	ledgerService services.LedgerServiceInterface,
	auditService services.AuditServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	jobs JobRunner,
) *AdminHandler {
	return &AdminHandler{
		ledgerService: ledgerService,
		auditService:  auditService,
		userRepo:      userRepo,
		jobs:          jobs,
	}
}

type postingFunc func(ctx context.Context, actor services.Actor, accountID uuid.UUID, amount decimal.Decimal, entry models.LedgerEntry) (*models.Transaction, error)

// Credit books a manual incoming entry
// @Summary Credit an account (admin)
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID (UUID)"
// @Param request body dto.LedgerPostingRequest true "Posting"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Kind does not fit a credit"
// @Failure 409 {object} errors.ErrorResponse "ACCOUNT_002 - Account closed"
// @Router /admin/accounts/{accountId}/credit [post]
func (h *AdminHandler) Credit(c echo.Context) error {
	return h.post(c, h.ledgerService.Credit)
}

// Debit books a manual outgoing entry
// @Summary Debit an account (admin)
// @Tags Admin
// @Security BearerAuth
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Insufficient funds"
// @Router /admin/accounts/{accountId}/debit [post]
func (h *AdminHandler) Debit(c echo.Context) error {
	return h.post(c, h.ledgerService.Debit)
}

func (h *AdminHandler) post(c echo.Context, apply postingFunc) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	var req dto.LedgerPostingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transaction, err := apply(c.Request().Context(), actor, accountID, decimal.RequireFromString(req.Amount), models.LedgerEntry{
		Kind:             req.Kind,
		CounterpartyIBAN: models.NormalizeIBAN(req.CounterpartyIBAN),
		Message:          req.Message,
		Note:             req.Note,
	})
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, transaction)
}

// VerifyHistory compares an account's balance with the sum of its history
// @Router /admin/accounts/{accountId}/verify [get]
func (h *AdminHandler) VerifyHistory(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, ok, err := parseUUIDParam(c, "accountId")
	if !ok {
		return err
	}

	check, err := h.ledgerService.VerifyHistory(c.Request().Context(), actor, accountID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.HistoryCheckResponse{
		AccountID:         check.AccountID.String(),
		Balance:           check.Balance,
		Sum:               check.Sum,
		LatestBalance:     check.LatestBalance,
		TransactionsTotal: check.TransactionsTotal,
		Consistent:        check.Consistent,
	})
}

// ListUsers lists the users known to the ledger
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	offset, limit := getPagination(c)

	users, total, err := h.userRepo.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: users,
		Meta: map[string]interface{}{
			"total":  total,
			"offset": offset,
			"limit":  limit,
		},
	})
}

// GetUserActivity returns the audit trail of one user
// @Router /admin/users/{userId}/audit [get]
func (h *AdminHandler) GetUserActivity(c echo.Context) error {
	userID, ok, err := parseUUIDParam(c, "userId")
	if !ok {
		return err
	}

	offset, limit := getPagination(c)
	logs, total, err := h.auditService.GetUserActivity(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AuditLogListResponse{Logs: logs, Total: total, Offset: offset, Limit: limit})
}

// GetResourceHistory returns the audit trail of one resource, e.g. a payment
// @Router /admin/audit/{resource}/{resourceId} [get]
func (h *AdminHandler) GetResourceHistory(c echo.Context) error {
	resourceID, ok, err := parseUUIDParam(c, "resourceId")
	if !ok {
		return err
	}

	offset, limit := getPagination(c)
	logs, total, err := h.auditService.GetResourceHistory(c.Request().Context(), c.Param("resource"), resourceID.String(), offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AuditLogListResponse{Logs: logs, Total: total, Offset: offset, Limit: limit})
}

// ListJobs reports the scheduled jobs and their next run
// @Router /admin/jobs [get]
func (h *AdminHandler) ListJobs(c echo.Context) error {
	statuses := h.jobs.Statuses()

	jobs := make([]dto.JobStatus, 0, len(statuses))
	for _, status := range statuses {
		jobs = append(jobs, dto.JobStatus{
			Name:    status.Name,
			NextRun: status.NextRun,
			Running: status.Running,
		})
	}

	return c.JSON(http.StatusOK, dto.JobListResponse{Jobs: jobs})
}

// RunJob runs a job immediately and waits for it to finish
// @Router /admin/jobs/{name}/run [post]
func (h *AdminHandler) RunJob(c echo.Context) error {
	name := c.Param("name")

	err := h.jobs.RunNow(c.Request().Context(), name)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Job " + name + " finished"})
	case stderrors.Is(err, scheduler.ErrUnknownJob):
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Unknown job "+name))
	case stderrors.Is(err, scheduler.ErrJobRunning):
		return SendError(c, errors.SystemJobRunning)
	default:
		return SendSystemError(c, err)
	}
}
