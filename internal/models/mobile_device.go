package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DeviceStatusActive  = "ACTIVE"
	DeviceStatusRevoked = "REVOKED"
)

// MobileDevice binds a user to the RSA public key of their approval app.
// The key never changes after registration; re-keying registers a new device.
type MobileDevice struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Label        string     `gorm:"type:varchar(100)" json:"label"`
	PublicKey    string     `gorm:"type:text;not null" json:"public_key"`
	Status       string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	RegisteredAt time.Time  `gorm:"not null" json:"registered_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
}

func (d *MobileDevice) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	if d.Status == "" {
		d.Status = DeviceStatusActive
	}

	if d.RegisteredAt.IsZero() {
		d.RegisteredAt = time.Now().UTC()
	}

	return d.Validate()
}

func (d *MobileDevice) Validate() error {
	if d.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if d.PublicKey == "" {
		return errors.New("public key is required")
	}

	if d.Status != DeviceStatusActive && d.Status != DeviceStatusRevoked {
		return errors.New("invalid device status")
	}

	return nil
}

func (d *MobileDevice) IsActive() bool {
	return d.Status == DeviceStatusActive
}

func (d *MobileDevice) TableName() string {
	return "mobile_devices"
}
