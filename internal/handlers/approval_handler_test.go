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
	"github.com/stretchr/testify/suite"
)

type ApprovalHandlerSuite struct {
	handlerSuite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockApprovalServiceInterface
	handler     *ApprovalHandler
}

func TestApprovalHandlerSuite(t *testing.T) {
	suite.Run(t, new(ApprovalHandlerSuite))
}

func (s *ApprovalHandlerSuite) SetupTest() {
	s.setupEcho()
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockApprovalServiceInterface(s.ctrl)
	s.handler = NewApprovalHandler(s.mockService)
}

func (s *ApprovalHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ApprovalHandlerSuite) TestInspect() {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	result := &services.InspectResult{
		RequestID: uuid.New(),
		Kind:      models.ApprovalKindPaymentCreate,
		Payload:   json.RawMessage(`{"amount":"10"}`),
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
	s.mockService.EXPECT().Inspect(gomock.Any(), "{REQUEST}ABCD1234.c2ln").Return(result, nil)

	// No user on the context: the device is not logged in.
	c, rec := s.newContext(http.MethodPost, "/mobile/approvals/inspect", dto.SignedMessageRequest{SignedMessage: "{REQUEST}ABCD1234.c2ln"}, "", nil)

	s.NoError(s.handler.Inspect(c))
	s.Equal(http.StatusOK, rec.Code)

	var got services.InspectResult
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(result.RequestID, got.RequestID)
	s.JSONEq(`{"amount":"10"}`, string(got.Payload))
}

func (s *ApprovalHandlerSuite) TestInspect_RefusalsLookAlike() {
	for _, err := range []error{services.ErrNotApprovable, services.ErrSignatureInvalid, services.ErrExpired} {
		s.Run(err.Error(), func() {
			s.mockService.EXPECT().Inspect(gomock.Any(), gomock.Any()).Return(nil, err)

			c, rec := s.newContext(http.MethodPost, "/", `{"signed_message":"{REQUEST}XXXX"}`, "", nil)

			s.NoError(s.handler.Inspect(c))
			resp := s.assertError(rec, http.StatusUnprocessableEntity, errors.ApprovalNotApprovable)
			s.Empty(resp.Error.Details)
		})
	}
}

func (s *ApprovalHandlerSuite) TestInspect_MissingMessage() {
	c, rec := s.newContext(http.MethodPost, "/", `{}`, "", nil)

	s.NoError(s.handler.Inspect(c))
	resp := s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
	s.Equal([]string{"signed_message: is required"}, resp.Error.Details)
}

func (s *ApprovalHandlerSuite) TestResolve_Approved() {
	request := &models.PendingApprovalRequest{
		ID:           uuid.New(),
		Kind:         models.ApprovalKindPaymentCreate,
		Status:       models.ApprovalStatusApproved,
		ActionStatus: models.ActionStatusSucceeded,
	}
	s.mockService.EXPECT().Resolve(gomock.Any(), "{APPROVE}ABCD1234.c2ln", models.ApprovalStatusApproved).
		Return(&services.ResolveResult{Request: request}, nil)

	c, rec := s.newContext(http.MethodPost, "/", dto.ResolveApprovalRequest{
		SignedMessage: "{APPROVE}ABCD1234.c2ln",
		Outcome:       models.ApprovalStatusApproved,
	}, "", nil)

	s.NoError(s.handler.Resolve(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ResolveApprovalResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(request.ID, resp.Request.ID)
	s.Empty(resp.ActionError)
}

func (s *ApprovalHandlerSuite) TestResolve_ActionFailureStillResolves() {
	request := &models.PendingApprovalRequest{
		ID:           uuid.New(),
		Status:       models.ApprovalStatusApproved,
		ActionStatus: models.ActionStatusFailed,
	}
	s.mockService.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&services.ResolveResult{Request: request, ActionErr: fmt.Errorf("%w: %w", services.ErrPaymentFailed, services.ErrInsufficientFunds)}, nil)

	c, rec := s.newContext(http.MethodPost, "/", dto.ResolveApprovalRequest{
		SignedMessage: "{APPROVE}ABCD1234.c2ln",
		Outcome:       models.ApprovalStatusApproved,
	}, "", nil)

	s.NoError(s.handler.Resolve(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ResolveApprovalResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(models.ApprovalStatusApproved, resp.Request.Status)
	s.Equal("payment execution failed: insufficient funds", resp.ActionError)
}

func (s *ApprovalHandlerSuite) TestResolve_AlreadyResolved() {
	s.mockService.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, services.ErrApprovalNotPending)

	c, rec := s.newContext(http.MethodPost, "/", dto.ResolveApprovalRequest{
		SignedMessage: "{REJECT}ABCD1234.c2ln",
		Outcome:       models.ApprovalStatusRejected,
	}, "", nil)

	s.NoError(s.handler.Resolve(c))
	s.assertError(rec, http.StatusConflict, errors.ApprovalNotPending)
}

func (s *ApprovalHandlerSuite) TestResolve_InvalidOutcome() {
	c, rec := s.newContext(http.MethodPost, "/", `{"signed_message":"{APPROVE}X","outcome":"MAYBE"}`, "", nil)

	s.NoError(s.handler.Resolve(c))
	resp := s.assertError(rec, http.StatusBadRequest, errors.ValidationGeneral)
	s.Equal([]string{"outcome: must be one of: APPROVED REJECTED"}, resp.Error.Details)
}

func (s *ApprovalHandlerSuite) TestListPending() {
	s.mockService.EXPECT().ListPending(gomock.Any(), s.userID).Return([]models.PendingApprovalRequest{{ID: uuid.New()}}, nil)

	c, rec := s.newContext(http.MethodGet, "/approvals", nil, models.RoleCustomer, nil)

	s.NoError(s.handler.ListPending(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.PendingApprovalsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Len(resp.Requests, 1)
}

func (s *ApprovalHandlerSuite) TestListPending_Unauthenticated() {
	c, rec := s.newContext(http.MethodGet, "/approvals", nil, "", nil)

	s.NoError(s.handler.ListPending(c))
	s.assertError(rec, http.StatusUnauthorized, errors.AuthMissingToken)
}

func (s *ApprovalHandlerSuite) TestCreateGenericChallenge() {
	s.mockService.EXPECT().
		CreateChallenge(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input services.ChallengeInput) (string, error) {
			s.Equal(s.userID, input.UserID)
			s.Equal("203.0.113.7", input.IPAddress)
			s.Equal(models.ApprovalKindGeneric, input.Kind)
			s.Equal(models.GenericPayload{Description: "Raise card limit to 2000 EUR"}, input.Payload)
			return "GEN1-CODE", nil
		})

	c, rec := s.newContext(http.MethodPost, "/approvals/generic", dto.GenericChallengeRequest{Description: "Raise card limit to 2000 EUR"}, models.RoleCustomer, nil)

	s.NoError(s.handler.CreateGenericChallenge(c))
	s.Equal(http.StatusAccepted, rec.Code)

	var resp dto.ChallengeResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("GEN1-CODE", resp.VerificationCode)
	s.Equal(models.ApprovalKindGeneric, resp.Kind)
}

func (s *ApprovalHandlerSuite) TestCreateGenericChallenge_NoDevice() {
	s.mockService.EXPECT().CreateChallenge(gomock.Any(), gomock.Any()).Return("", services.ErrNoActiveDevice)

	c, rec := s.newContext(http.MethodPost, "/approvals/generic", dto.GenericChallengeRequest{Description: "x"}, models.RoleCustomer, nil)

	s.NoError(s.handler.CreateGenericChallenge(c))
	s.assertError(rec, http.StatusConflict, errors.DeviceNoActiveDevice)
}
