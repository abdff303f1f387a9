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

type MobileDeviceRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo MobileDeviceRepositoryInterface
	user *models.User
	ctx  context.Context
}

func TestMobileDeviceRepositorySuite(t *testing.T) {
	suite.Run(t, new(MobileDeviceRepositorySuite))
}

func (s *MobileDeviceRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewMobileDeviceRepository(s.db.DB)
	s.user = database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.ctx = context.Background()
}

func (s *MobileDeviceRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *MobileDeviceRepositorySuite) register(label string) *models.MobileDevice {
	device := &models.MobileDevice{
		UserID:    s.user.ID,
		Label:     label,
		PublicKey: "-----BEGIN PUBLIC KEY-----\n" + gofakeit.LetterN(32) + "\n-----END PUBLIC KEY-----\n",
	}
	s.Require().NoError(s.repo.Register(s.ctx, device))
	return device
}

func (s *MobileDeviceRepositorySuite) TestRegister_RevokesPreviousDevice() {
	first := s.register("old phone")
	second := s.register("new phone")

	active, err := s.repo.GetActiveByUserID(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)

	old, err := s.repo.GetByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(models.DeviceStatusRevoked, old.Status)
	s.NotNil(old.RevokedAt)

	devices, err := s.repo.ListByUserID(s.ctx, s.user.ID)
	s.Require().NoError(err)
	s.Len(devices, 2)
}

func (s *MobileDeviceRepositorySuite) TestGetActive_NoDevice() {
	_, err := s.repo.GetActiveByUserID(s.ctx, s.user.ID)
	s.ErrorIs(err, ErrNoActiveDevice)
}

func (s *MobileDeviceRepositorySuite) TestRevoke() {
	device := s.register("phone")

	s.Require().NoError(s.repo.Revoke(s.ctx, device.ID, time.Now()))
	s.ErrorIs(s.repo.Revoke(s.ctx, device.ID, time.Now()), ErrDeviceNotActive)
	s.ErrorIs(s.repo.Revoke(s.ctx, uuid.New(), time.Now()), ErrDeviceNotFound)

	_, err := s.repo.GetActiveByUserID(s.ctx, s.user.ID)
	s.ErrorIs(err, ErrNoActiveDevice)
}

func (s *MobileDeviceRepositorySuite) TestTouchLastUsed() {
	device := s.register("phone")
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.TouchLastUsed(s.ctx, device.ID, at))

	found, err := s.repo.GetByID(s.ctx, device.ID)
	s.Require().NoError(err)
	s.Require().NotNil(found.LastUsedAt)
	s.True(found.LastUsedAt.Equal(at))
}
