package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ledger-engine/internal/clock"
	"ledger-engine/internal/config"
	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories"
	"ledger-engine/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type handlerFunc func(ctx context.Context, request *models.PendingApprovalRequest) error

func (f handlerFunc) HandleApproved(ctx context.Context, request *models.PendingApprovalRequest) error {
	return f(ctx, request)
}

type ApprovalServiceSuite struct {
	suite.Suite
	env   *testEnv
	user  *models.User
	actor Actor
	key   *rsa.PrivateKey
}

func TestApprovalServiceSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceSuite))
}

func (s *ApprovalServiceSuite) SetupTest() {
	s.env = newTestEnv(s.T(), time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	s.user, s.actor = s.env.customer()
	s.key = deviceKey(s.T(), 0)
	s.env.trustDevice(s.actor, s.key)
}

func (s *ApprovalServiceSuite) challenge(kind string) string {
	code, err := s.env.approvals.CreateChallenge(s.env.ctx, ChallengeInput{
		UserID:    s.user.ID,
		IPAddress: s.actor.IPAddress,
		Kind:      kind,
		Payload:   models.GenericPayload{Description: "confirm login from new browser"},
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(code)
	return code
}

func (s *ApprovalServiceSuite) signed(tag, code string) string {
	return signMessage(s.T(), s.key, "{"+tag+"}"+code)
}

func (s *ApprovalServiceSuite) TestCreateChallenge_RequiresActiveDevice() {
	_, other := s.env.customer()
	_, err := s.env.approvals.CreateChallenge(s.env.ctx, ChallengeInput{UserID: other.UserID, Kind: models.ApprovalKindGeneric})
	s.ErrorIs(err, ErrNoActiveDevice)
}

func (s *ApprovalServiceSuite) TestCreateChallenge_InvalidKind() {
	_, err := s.env.approvals.CreateChallenge(s.env.ctx, ChallengeInput{UserID: s.user.ID, Kind: "TRANSFER"})
	s.ErrorIs(err, ErrValidation)
}

func (s *ApprovalServiceSuite) TestCreateChallenge_StoresOnlyDigest() {
	code := s.challenge(models.ApprovalKindGeneric)

	request, err := s.env.approvalRepo.GetByCodeHash(s.env.ctx, HashVerificationCode(code))
	s.Require().NoError(err)
	s.NotEqual(code, request.CodeHash)
	s.Equal(models.ApprovalStatusPending, request.Status)
	s.WithinDuration(s.env.clock.Now().Add(5*time.Minute), request.ExpiresAt, time.Second)
}

func (s *ApprovalServiceSuite) TestCreateChallenge_ConcurrentStagingLeavesOnePending() {
	var wg sync.WaitGroup
	var created atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.env.approvals.CreateChallenge(s.env.ctx, ChallengeInput{
				UserID:  s.user.ID,
				Kind:    models.ApprovalKindGeneric,
				Payload: models.GenericPayload{Description: "confirm"},
			}); err == nil {
				created.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(10), created.Load())
	count, err := s.env.approvalRepo.CountPending(s.env.ctx, s.user.ID, models.ApprovalKindGeneric)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *ApprovalServiceSuite) TestInspect() {
	code := s.challenge(models.ApprovalKindGeneric)

	result, err := s.env.approvals.Inspect(s.env.ctx, s.signed(TagRequest, code))
	s.Require().NoError(err)
	s.Equal(models.ApprovalKindGeneric, result.Kind)
	s.JSONEq(`{"description":"confirm login from new browser"}`, string(result.Payload))

	_, err = s.env.approvals.Inspect(s.env.ctx, s.signed(TagApprove, code))
	s.ErrorIs(err, ErrNotApprovable)
}

func (s *ApprovalServiceSuite) TestResolve_Approve() {
	code := s.challenge(models.ApprovalKindGeneric)

	result, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusApproved)
	s.Require().NoError(err)
	s.NoError(result.ActionErr)
	s.Equal(models.ApprovalStatusApproved, result.Request.Status)
	s.NotNil(result.Request.DeviceID)

	stored, err := s.env.approvalRepo.GetByID(s.env.ctx, result.Request.ID)
	s.Require().NoError(err)
	s.Equal(models.ApprovalStatusApproved, stored.Status)
	s.NotNil(stored.CompletedAt)

	_, err = s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrApprovalNotPending)
}

func (s *ApprovalServiceSuite) TestResolve_Reject() {
	code := s.challenge(models.ApprovalKindGeneric)

	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusRejected)
	s.ErrorIs(err, ErrNotApprovable)

	result, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagReject, code), models.ApprovalStatusRejected)
	s.Require().NoError(err)
	s.Equal(models.ApprovalStatusRejected, result.Request.Status)
}

func (s *ApprovalServiceSuite) TestResolve_UnsupportedOutcome() {
	code := s.challenge(models.ApprovalKindGeneric)
	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusExpired)
	s.ErrorIs(err, ErrValidation)
}

func (s *ApprovalServiceSuite) TestResolve_UnknownCode() {
	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, "doesnotexist"), models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrNotApprovable)
}

func (s *ApprovalServiceSuite) TestResolve_BadSignatureLeavesRequestPending() {
	code := s.challenge(models.ApprovalKindGeneric)
	forged := signMessage(s.T(), deviceKey(s.T(), 1), "{APPROVE}"+code)

	_, err := s.env.approvals.Resolve(s.env.ctx, forged, models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrNotApprovable)

	request, err := s.env.approvalRepo.GetByCodeHash(s.env.ctx, HashVerificationCode(code))
	s.Require().NoError(err)
	s.True(request.IsPending())
}

func (s *ApprovalServiceSuite) TestResolve_Expired() {
	code := s.challenge(models.ApprovalKindGeneric)
	s.env.clock.Advance(6 * time.Minute)

	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrNotApprovable)

	expired, err := s.env.approvals.ExpireStale(s.env.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), expired)

	expired, err = s.env.approvals.ExpireStale(s.env.ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), expired)

	_, err = s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrApprovalNotPending)
}

func (s *ApprovalServiceSuite) TestNewChallengeInvalidatesPreviousOfSameKind() {
	first := s.challenge(models.ApprovalKindGeneric)
	second := s.challenge(models.ApprovalKindGeneric)

	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, first), models.ApprovalStatusApproved)
	s.ErrorIs(err, ErrApprovalNotPending)

	_, err = s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, second), models.ApprovalStatusApproved)
	s.NoError(err)
}

func (s *ApprovalServiceSuite) TestResolve_ConcurrentApprovalsSucceedOnce() {
	code := s.challenge(models.ApprovalKindGeneric)
	message := s.signed(TagApprove, code)

	var handled atomic.Int32
	s.env.approvals.RegisterHandler(models.ApprovalKindGeneric, handlerFunc(func(context.Context, *models.PendingApprovalRequest) error {
		handled.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.env.approvals.Resolve(s.env.ctx, message, models.ApprovalStatusApproved); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(1), handled.Load())
}

func (s *ApprovalServiceSuite) TestResolve_ActionFailureKeepsApproval() {
	s.env.approvals.RegisterHandler(models.ApprovalKindGeneric, handlerFunc(func(context.Context, *models.PendingApprovalRequest) error {
		return errors.New("downstream refused")
	}))
	code := s.challenge(models.ApprovalKindGeneric)

	result, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagApprove, code), models.ApprovalStatusApproved)
	s.Require().NoError(err)
	s.EqualError(result.ActionErr, "downstream refused")

	stored, err := s.env.approvalRepo.GetByID(s.env.ctx, result.Request.ID)
	s.Require().NoError(err)
	s.Equal(models.ApprovalStatusApproved, stored.Status)
	s.Equal(models.ActionStatusFailed, stored.ActionStatus)
	s.Equal("downstream refused", stored.FailureReason)
}

func (s *ApprovalServiceSuite) TestRejectDoesNotRunHandler() {
	s.env.approvals.RegisterHandler(models.ApprovalKindGeneric, handlerFunc(func(context.Context, *models.PendingApprovalRequest) error {
		s.Fail("handler must not run on rejection")
		return nil
	}))
	code := s.challenge(models.ApprovalKindGeneric)

	_, err := s.env.approvals.Resolve(s.env.ctx, s.signed(TagReject, code), models.ApprovalStatusRejected)
	s.NoError(err)
}

func (s *ApprovalServiceSuite) TestListPending() {
	s.challenge(models.ApprovalKindGeneric)
	s.challenge(models.ApprovalKindAccountClose)

	pending, err := s.env.approvals.ListPending(s.env.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Len(pending, 2)

	s.env.clock.Advance(10 * time.Minute)
	pending, err = s.env.approvals.ListPending(s.env.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Empty(pending)
}

func TestCreateChallenge_RetriesAfterConcurrentPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := repository_mocks.NewMockApprovalRequestRepositoryInterface(ctrl)
	devices := repository_mocks.NewMockMobileDeviceRepositoryInterface(ctrl)
	auditRepo := repository_mocks.NewMockAuditLogRepositoryInterface(ctrl)

	userID := uuid.New()
	devices.EXPECT().GetActiveByUserID(gomock.Any(), userID).Return(&models.MobileDevice{UserID: userID}, nil)
	auditRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	gomock.InOrder(
		requests.EXPECT().CreateReplacingPending(gomock.Any(), gomock.Any()).Return(int64(0), repositories.ErrPendingRequestConflict),
		requests.EXPECT().CreateReplacingPending(gomock.Any(), gomock.Any()).Return(int64(1), nil),
	)

	service := NewApprovalService(requests, devices, nil,
		NewAuditService(auditRepo, discardLogger()),
		NewPrometheusMetrics(prometheus.NewRegistry()),
		&config.ApprovalConfig{GenericTTL: 5 * time.Minute},
		clock.NewFixed(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)),
		discardLogger(),
	)

	code, err := service.CreateChallenge(context.Background(), ChallengeInput{
		UserID:  userID,
		Kind:    models.ApprovalKindGeneric,
		Payload: models.GenericPayload{Description: "confirm"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}
