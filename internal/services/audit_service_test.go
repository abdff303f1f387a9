package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledger-engine/internal/models"
	"ledger-engine/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// AuditServiceTestSuite is the test suite for AuditService
type AuditServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *repository_mocks.MockAuditLogRepositoryInterface
	service  AuditServiceInterface
	ctx      context.Context
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.service = NewAuditService(s.mockRepo, discardLogger())
	s.ctx = context.Background()
}

func (s *AuditServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) TestNewAuditService_NilLogger() {
	service := NewAuditService(s.mockRepo, nil)
	s.NotNil(service)
}

func (s *AuditServiceTestSuite) TestValidateActivityType() {
	s.NoError(ValidateActivityType(models.AuditActionPaymentCreated))
	s.NoError(ValidateActivityType(models.AuditActionApprovalApproved))
	s.Error(ValidateActivityType("invalid_action"))
	s.Error(ValidateActivityType(""))
}

func (s *AuditServiceTestSuite) TestRecord_WritesLog() {
	userID := uuid.New()
	log := &models.AuditLog{
		UserID:     &userID,
		Action:     models.AuditActionAccountCreated,
		Resource:   "account",
		ResourceID: uuid.NewString(),
		IPAddress:  "192.168.1.1",
	}

	s.mockRepo.EXPECT().
		Create(gomock.Any(), log).
		DoAndReturn(func(_ context.Context, l *models.AuditLog) error {
			l.ID = uuid.New()
			return nil
		}).
		Times(1)

	s.service.Record(s.ctx, log)
	s.NotEqual(uuid.Nil, log.ID)
}

func (s *AuditServiceTestSuite) TestRecord_SwallowsRepositoryError() {
	s.mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(errors.New("database error")).
		Times(1)

	s.NotPanics(func() {
		s.service.Record(s.ctx, &models.AuditLog{Action: models.AuditActionPaymentFailed, Resource: "payment"})
	})
}

func (s *AuditServiceTestSuite) TestRecord_DropsInvalidEntries() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	s.service.Record(s.ctx, nil)
	s.service.Record(s.ctx, &models.AuditLog{Action: "user.login", Resource: "auth"})
}

func (s *AuditServiceTestSuite) TestGetUserActivity() {
	userID := uuid.New()
	now := time.Now()
	expected := []*models.AuditLog{
		{ID: uuid.New(), UserID: &userID, Action: models.AuditActionPaymentCreated, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), UserID: &userID, Action: models.AuditActionDeviceRegistered, CreatedAt: now.Add(-2 * time.Hour)},
	}

	s.mockRepo.EXPECT().
		GetByUserID(gomock.Any(), userID, 0, 10).
		Return(expected, int64(2), nil).
		Times(1)

	logs, total, err := s.service.GetUserActivity(s.ctx, userID, 0, 10)
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Equal(expected, logs)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_NormalizesLimit() {
	userID := uuid.New()

	s.mockRepo.EXPECT().GetByUserID(gomock.Any(), userID, 0, 20).Return(nil, int64(0), nil)
	s.mockRepo.EXPECT().GetByUserID(gomock.Any(), userID, 5, 100).Return(nil, int64(0), nil)

	_, _, err := s.service.GetUserActivity(s.ctx, userID, 0, 0)
	s.NoError(err)
	_, _, err = s.service.GetUserActivity(s.ctx, userID, 5, 1000)
	s.NoError(err)
}

func (s *AuditServiceTestSuite) TestGetUserActivity_NilUser() {
	_, _, err := s.service.GetUserActivity(s.ctx, uuid.Nil, 0, 10)
	s.ErrorIs(err, ErrInvalidUserID)
}

func (s *AuditServiceTestSuite) TestGetResourceHistory() {
	paymentID := uuid.NewString()

	s.mockRepo.EXPECT().
		GetByResource(gomock.Any(), "payment", paymentID, 0, 20).
		Return([]*models.AuditLog{{ID: uuid.New(), Resource: "payment", ResourceID: paymentID}}, int64(1), nil)

	logs, total, err := s.service.GetResourceHistory(s.ctx, "payment", paymentID, 0, 20)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(logs, 1)

	_, _, err = s.service.GetResourceHistory(s.ctx, "", paymentID, 0, 20)
	s.ErrorIs(err, ErrInvalidAuditLog)
}

func (s *AuditServiceTestSuite) TestPurgeOlderThan() {
	s.mockRepo.EXPECT().
		DeleteOlderThan(gomock.Any(), 90*24*time.Hour).
		Return(int64(7), nil)

	deleted, err := s.service.PurgeOlderThan(s.ctx, 90*24*time.Hour)
	s.NoError(err)
	s.Equal(int64(7), deleted)

	_, err = s.service.PurgeOlderThan(s.ctx, 0)
	s.ErrorIs(err, ErrValidation)
}

func (s *AuditServiceTestSuite) TestNewAuditLog_SystemActorHasNoUser() {
	resourceID := uuid.New()
	log := newAuditLog(SystemActor, models.AuditActionInterestSettled, "account", resourceID, nil)

	s.Nil(log.UserID)
	s.Equal("system", log.IPAddress)
	s.Equal(resourceID.String(), log.ResourceID)
	s.Equal(models.AuditOutcomeSuccess, log.Outcome)
}
