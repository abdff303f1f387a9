package repositories

import (
	"context"
	"testing"
	"time"

	"ledger-engine/internal/database"
	"ledger-engine/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestAuditLogRepository(t *testing.T) {
	suite.Run(t, new(AuditLogRepositorySuite))
}

type AuditLogRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo AuditLogRepositoryInterface
	user *models.User
	ctx  context.Context
}

func (s *AuditLogRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAuditLogRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.ctx = context.Background()
}

func (s *AuditLogRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuditLogRepositorySuite) record(action, resource, resourceID string, createdAt time.Time) *models.AuditLog {
	log := &models.AuditLog{
		UserID:     &s.user.ID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  gofakeit.IPv4Address(),
		CreatedAt:  createdAt,
	}
	s.Require().NoError(s.repo.Create(s.ctx, log))
	return log
}

func (s *AuditLogRepositorySuite) TestAuditLogRepository_Create() {
	paymentID := uuid.New()
	log := &models.AuditLog{
		UserID:     &s.user.ID,
		Action:     models.AuditActionPaymentCreated,
		Resource:   "payment",
		ResourceID: paymentID.String(),
		IPAddress:  "192.168.1.1",
		UserAgent:  "Mozilla/5.0",
	}
	log.SetMetadata("amount", "25.00")

	err := s.repo.Create(s.ctx, log)
	s.NoError(err)
	s.NotEqual(uuid.Nil, log.ID)
	s.NotZero(log.CreatedAt)
	s.Equal(models.AuditOutcomeSuccess, log.Outcome)

	found, err := s.repo.GetByID(s.ctx, log.ID)
	s.Require().NoError(err)
	s.Equal("25.00", found.GetMetadata("amount", ""))
}

func (s *AuditLogRepositorySuite) TestAuditLogRepository_CreateWithoutUser() {
	log := &models.AuditLog{
		Action:   models.AuditActionInterestSettled,
		Resource: "account",
		Outcome:  models.AuditOutcomeSuccess,
	}

	s.NoError(s.repo.Create(s.ctx, log))
	s.Error(s.repo.Create(s.ctx, nil))
}

func (s *AuditLogRepositorySuite) TestAuditLogRepository_GetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrAuditLogNotFound)
}

func (s *AuditLogRepositorySuite) TestAuditLogRepository_Queries() {
	now := time.Now().UTC()
	paymentID := uuid.New().String()
	s.record(models.AuditActionPaymentCreated, "payment", paymentID, now.Add(-3*time.Minute))
	s.record(models.AuditActionPaymentExecuted, "payment", paymentID, now.Add(-2*time.Minute))
	s.record(models.AuditActionDeviceRegistered, "device", uuid.New().String(), now.Add(-time.Minute))

	logs, total, err := s.repo.GetByUserID(s.ctx, s.user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(3), total)
	s.Equal(models.AuditActionDeviceRegistered, logs[0].Action)

	logs, total, err = s.repo.GetByAction(s.ctx, models.AuditActionPaymentExecuted, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Equal(paymentID, logs[0].ResourceID)

	_, total, err = s.repo.GetByResource(s.ctx, "payment", paymentID, 0, 10)
	s.NoError(err)
	s.Equal(int64(2), total)

	_, total, err = s.repo.GetByResource(s.ctx, "device", "", 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)

	_, total, err = s.repo.GetByTimeRange(s.ctx, now.Add(-150*time.Second), now, 0, 10)
	s.NoError(err)
	s.Equal(int64(2), total)
}

func (s *AuditLogRepositorySuite) TestAuditLogRepository_DeleteOlderThan() {
	now := time.Now().UTC()
	s.record(models.AuditActionAccountCreated, "account", "", now.AddDate(0, 0, -100))
	s.record(models.AuditActionAccountUpdated, "account", "", now)

	deleted, err := s.repo.DeleteOlderThan(s.ctx, 90*24*time.Hour)
	s.NoError(err)
	s.Equal(int64(1), deleted)

	_, total, err := s.repo.GetByUserID(s.ctx, s.user.ID, 0, 10)
	s.NoError(err)
	s.Equal(int64(1), total)
}
