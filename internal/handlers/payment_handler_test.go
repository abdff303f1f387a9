package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ledger-engine/internal/dto"
	"ledger-engine/internal/errors"
	"ledger-engine/internal/models"
	"ledger-engine/internal/services"
	"ledger-engine/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const receiverIBAN = "GB82WEST12345698765432"

type PaymentHandlerSuite struct {
	handlerSuite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockPaymentServiceInterface
	handler     *PaymentHandler
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

func (s *PaymentHandlerSuite) SetupTest() {
	s.setupEcho()
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockPaymentServiceInterface(s.ctrl)
	s.handler = NewPaymentHandler(s.mockService)
}

func (s *PaymentHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PaymentHandlerSuite) TestCreatePayment_StagesApproval() {
	accountID := uuid.New()

	s.mockService.EXPECT().
		StagePaymentCreation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, actor services.Actor, input services.PaymentInput) (string, error) {
			s.Equal(s.userID, actor.UserID)
			s.Equal(accountID, input.AccountID)
			s.Equal(receiverIBAN, input.ReceiverIBAN)
			s.True(decimal.RequireFromString("99.95").Equal(input.Amount))
			s.Equal(models.ExecutionTypeNormal, input.ExecutionType)
			s.Require().NotNil(input.ExecutionDate)
			s.True(input.ExecutionDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
			return "K7Q2-PX9M", nil
		})

	c, rec := s.newContext(http.MethodPost, "/payments", dto.CreatePaymentRequest{
		AccountID:     accountID.String(),
		ReceiverIBAN:  receiverIBAN,
		Amount:        "99.95",
		Message:       "Invoice 2025-031",
		ExecutionType: "normal",
		ExecutionDate: "2025-03-10",
	}, models.RoleCustomer, nil)

	s.NoError(s.handler.CreatePayment(c))
	s.Equal(http.StatusAccepted, rec.Code)

	var resp dto.ChallengeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("K7Q2-PX9M", resp.VerificationCode)
	s.Equal(models.ApprovalKindPaymentCreate, resp.Kind)
}

func (s *PaymentHandlerSuite) TestCreatePayment_InstantHasNoDate() {
	s.mockService.EXPECT().
		StagePaymentCreation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ services.Actor, input services.PaymentInput) (string, error) {
			s.Equal(models.ExecutionTypeInstant, input.ExecutionType)
			s.Nil(input.ExecutionDate)
			return "code", nil
		})

	c, rec := s.newContext(http.MethodPost, "/payments", dto.CreatePaymentRequest{
		AccountID:     uuid.NewString(),
		ReceiverIBAN:  receiverIBAN,
		Amount:        "10",
		ExecutionType: "INSTANT",
	}, models.RoleCustomer, nil)

	s.NoError(s.handler.CreatePayment(c))
	s.Equal(http.StatusAccepted, rec.Code)
}

func (s *PaymentHandlerSuite) TestCreatePayment_ValidationErrors() {
	c, rec := s.newContext(http.MethodPost, "/payments", dto.CreatePaymentRequest{
		AccountID:     "not-a-uuid",
		ReceiverIBAN:  "DE00123",
		Amount:        "-1",
		ExecutionType: "SOMETIME",
	}, models.RoleCustomer, nil)

	s.NoError(s.handler.CreatePayment(c))
	resp := s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
	s.Equal([]string{
		"account_id: must be a valid UUID",
		"amount: must be a positive amount with at most 4 decimal places",
		"execution_type: must be INSTANT or NORMAL",
		"receiver_iban: must be a valid IBAN",
	}, resp.Error.Details)
}

func (s *PaymentHandlerSuite) TestCreatePayment_ServiceRefusals() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   errors.ErrorCode
	}{
		{"past date", services.ErrInvalidExecutionDate, http.StatusBadRequest, errors.ValidationInvalidDate},
		{"no write access", services.ErrForbidden, http.StatusForbidden, errors.AccountOperationNotPermitted},
		{"closed account", services.ErrAccountNotActive, http.StatusConflict, errors.AccountNotActive},
		{"no device", services.ErrNoActiveDevice, http.StatusConflict, errors.DeviceNoActiveDevice},
		{"insufficient funds", services.ErrInsufficientFunds, http.StatusUnprocessableEntity, errors.AccountInsufficientFunds},
		{"timeout", fmt.Errorf("stage: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, errors.SystemServiceUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().StagePaymentCreation(gomock.Any(), gomock.Any(), gomock.Any()).Return("", tc.err)

			c, rec := s.newContext(http.MethodPost, "/payments", dto.CreatePaymentRequest{
				AccountID:     uuid.NewString(),
				ReceiverIBAN:  receiverIBAN,
				Amount:        "10",
				ExecutionType: "INSTANT",
			}, models.RoleCustomer, nil)

			s.NoError(s.handler.CreatePayment(c))
			s.assertError(rec, tc.status, tc.code)
		})
	}
}

func (s *PaymentHandlerSuite) TestUpdatePayment_OnlyChangedFields() {
	paymentID := uuid.New()

	s.mockService.EXPECT().
		StagePaymentUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ services.Actor, changes models.PaymentUpdatePayload) (string, error) {
			s.Equal(paymentID, changes.PaymentID)
			s.Require().NotNil(changes.Amount)
			s.True(decimal.RequireFromString("15.5").Equal(*changes.Amount))
			s.Nil(changes.ReceiverIBAN)
			s.Nil(changes.Message)
			s.Nil(changes.ExecutionDate)
			return "code", nil
		})

	c, rec := s.newContext(http.MethodPatch, "/payments/"+paymentID.String(), `{"amount":"15.5"}`, models.RoleCustomer, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.UpdatePayment(c))
	s.Equal(http.StatusAccepted, rec.Code)
}

func (s *PaymentHandlerSuite) TestUpdatePayment_Locked() {
	paymentID := uuid.New()
	s.mockService.EXPECT().StagePaymentUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return("", services.ErrPaymentNotModifiable)

	c, rec := s.newContext(http.MethodPatch, "/", `{"note":"later"}`, models.RoleCustomer, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.UpdatePayment(c))
	s.assertError(rec, http.StatusConflict, errors.PaymentNotModifiable)
}

func (s *PaymentHandlerSuite) TestUpdatePayment_InvalidID() {
	c, rec := s.newContext(http.MethodPatch, "/", `{"note":"later"}`, models.RoleCustomer, params{"paymentId": "42"})

	s.NoError(s.handler.UpdatePayment(c))
	s.assertError(rec, http.StatusBadRequest, errors.ValidationInvalidFormat)
}

func (s *PaymentHandlerSuite) TestCancelPayment() {
	paymentID := uuid.New()
	s.mockService.EXPECT().StagePaymentCancellation(gomock.Any(), gomock.Any(), paymentID).Return("code", nil)

	c, rec := s.newContext(http.MethodDelete, "/", nil, models.RoleCustomer, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.CancelPayment(c))
	s.Equal(http.StatusAccepted, rec.Code)

	var resp dto.ChallengeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(models.ApprovalKindPaymentCancel, resp.Kind)
}

func (s *PaymentHandlerSuite) TestCancelPayment_NotPending() {
	paymentID := uuid.New()
	s.mockService.EXPECT().StagePaymentCancellation(gomock.Any(), gomock.Any(), paymentID).Return("", services.ErrPaymentNotPending)

	c, rec := s.newContext(http.MethodDelete, "/", nil, models.RoleCustomer, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.CancelPayment(c))
	s.assertError(rec, http.StatusConflict, errors.PaymentNotPending)
}

func (s *PaymentHandlerSuite) TestGetPayment() {
	payment := &models.Payment{ID: uuid.New(), ReceiverIBAN: receiverIBAN, Status: models.PaymentStatusPending}
	s.mockService.EXPECT().GetPayment(gomock.Any(), gomock.Any(), payment.ID).Return(payment, nil)

	c, rec := s.newContext(http.MethodGet, "/", nil, models.RoleCustomer, params{"paymentId": payment.ID.String()})

	s.NoError(s.handler.GetPayment(c))
	s.Equal(http.StatusOK, rec.Code)

	var got models.Payment
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(payment.ID, got.ID)
	s.Equal(models.PaymentStatusPending, got.Status)
}

func (s *PaymentHandlerSuite) TestGetPayment_NotFound() {
	paymentID := uuid.New()
	s.mockService.EXPECT().GetPayment(gomock.Any(), gomock.Any(), paymentID).Return(nil, services.ErrPaymentNotFound)

	c, rec := s.newContext(http.MethodGet, "/", nil, models.RoleCustomer, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.GetPayment(c))
	s.assertError(rec, http.StatusNotFound, errors.PaymentNotFound)
}

func (s *PaymentHandlerSuite) TestListPayments_Filters() {
	accountID := uuid.New()
	s.mockService.EXPECT().
		ListPayments(gomock.Any(), gomock.Any(), models.PaymentFilters{
			AccountID:     accountID,
			Status:        models.PaymentStatusFailed,
			ExecutionType: models.ExecutionTypeInstant,
			Offset:        5,
			Limit:         10,
		}).
		Return([]models.Payment{{ID: uuid.New()}}, int64(6), nil)

	c, rec := s.newContext(http.MethodGet, "/?status=failed&execution_type=instant&offset=5&limit=10", nil, models.RoleCustomer, params{"accountId": accountID.String()})

	s.NoError(s.handler.ListPayments(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.PaymentListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(int64(6), resp.Total)
	s.Len(resp.Payments, 1)
}

func (s *PaymentHandlerSuite) TestListPendingPayments() {
	accountID := uuid.New()
	s.mockService.EXPECT().ListPendingPayments(gomock.Any(), gomock.Any(), accountID).Return([]models.Payment{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	c, rec := s.newContext(http.MethodGet, "/", nil, models.RoleCustomer, params{"accountId": accountID.String()})

	s.NoError(s.handler.ListPendingPayments(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.PaymentListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(int64(2), resp.Total)
}

func (s *PaymentHandlerSuite) TestAdminCreatePayment_ExecutionFailure() {
	s.mockService.EXPECT().
		AdminCreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: %w", services.ErrPaymentFailed, services.ErrInsufficientFunds))

	c, rec := s.newContext(http.MethodPost, "/admin/payments", dto.CreatePaymentRequest{
		AccountID:     uuid.NewString(),
		ReceiverIBAN:  receiverIBAN,
		Amount:        "5000",
		ExecutionType: "INSTANT",
	}, models.RoleAdmin, nil)

	s.NoError(s.handler.AdminCreatePayment(c))
	resp := s.assertError(rec, http.StatusUnprocessableEntity, errors.PaymentExecutionFailed)
	s.Equal([]string{"payment execution failed: insufficient funds"}, resp.Error.Details)
}

func (s *PaymentHandlerSuite) TestAdminCreatePayment() {
	payment := &models.Payment{ID: uuid.New(), Status: models.PaymentStatusExecuted}
	s.mockService.EXPECT().AdminCreatePayment(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, actor services.Actor, _ services.PaymentInput) (*models.Payment, error) {
			s.True(actor.IsAdmin())
			return payment, nil
		})

	c, rec := s.newContext(http.MethodPost, "/admin/payments", dto.CreatePaymentRequest{
		AccountID:     uuid.NewString(),
		ReceiverIBAN:  receiverIBAN,
		Amount:        "50",
		ExecutionType: "INSTANT",
	}, models.RoleAdmin, nil)

	s.NoError(s.handler.AdminCreatePayment(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *PaymentHandlerSuite) TestAdminUpdatePayment() {
	paymentID := uuid.New()
	s.mockService.EXPECT().
		AdminUpdatePayment(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ services.Actor, changes models.PaymentUpdatePayload) (*models.Payment, error) {
			s.Require().NotNil(changes.ExecutionDate)
			s.Equal("2025-04-01", changes.ExecutionDate.Format(time.DateOnly))
			return &models.Payment{ID: paymentID}, nil
		})

	c, rec := s.newContext(http.MethodPatch, "/", `{"execution_date":"2025-04-01"}`, models.RoleAdmin, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.AdminUpdatePayment(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *PaymentHandlerSuite) TestAdminCancelPayment() {
	paymentID := uuid.New()
	s.mockService.EXPECT().AdminCancelPayment(gomock.Any(), gomock.Any(), paymentID).Return(nil)

	c, rec := s.newContext(http.MethodDelete, "/", nil, models.RoleAdmin, params{"paymentId": paymentID.String()})

	s.NoError(s.handler.AdminCancelPayment(c))
	s.Equal(http.StatusOK, rec.Code)
}
