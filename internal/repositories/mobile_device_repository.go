package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDeviceNotFound  = errors.New("mobile device not found")
	ErrNoActiveDevice  = errors.New("no active mobile device")
	ErrDeviceNotActive = errors.New("mobile device is not active")
)

type mobileDeviceRepository struct {
	db *gorm.DB
}

func NewMobileDeviceRepository(db *gorm.DB) MobileDeviceRepositoryInterface {
	return &mobileDeviceRepository{db: db}
}

// Register revokes the user's currently active device, if any, and stores
// device as the new active one.
func (r *mobileDeviceRepository) Register(ctx context.Context, device *models.MobileDevice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if !device.RegisteredAt.IsZero() {
			now = device.RegisteredAt
		}

		if err := tx.Model(&models.MobileDevice{}).
			Where("user_id = ? AND status = ?", device.UserID, models.DeviceStatusActive).
			Updates(map[string]interface{}{
				"status":     models.DeviceStatusRevoked,
				"revoked_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to revoke previous device: %w", err)
		}

		device.Status = models.DeviceStatusActive
		if err := tx.Create(device).Error; err != nil {
			return fmt.Errorf("failed to register device: %w", err)
		}

		return nil
	})
}

func (r *mobileDeviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MobileDevice, error) {
	var device models.MobileDevice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return &device, nil
}

func (r *mobileDeviceRepository) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.MobileDevice, error) {
	var device models.MobileDevice
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.DeviceStatusActive).
		Order("registered_at DESC").
		First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveDevice
		}
		return nil, fmt.Errorf("failed to get active device: %w", err)
	}
	return &device, nil
}

func (r *mobileDeviceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.MobileDevice, error) {
	var devices []models.MobileDevice
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (r *mobileDeviceRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.MobileDevice{}).
		Where("id = ? AND status = ?", id, models.DeviceStatusActive).
		Updates(map[string]interface{}{
			"status":     models.DeviceStatusRevoked,
			"revoked_at": at.UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to revoke device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrDeviceNotActive
	}
	return nil
}

func (r *mobileDeviceRepository) TouchLastUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&models.MobileDevice{}).
		Where("id = ?", id).
		Update("last_used_at", at.UTC()).Error; err != nil {
		return fmt.Errorf("failed to touch device: %w", err)
	}
	return nil
}
