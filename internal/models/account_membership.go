package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MembershipRoleOwner = "OWNER"
	MembershipRoleWrite = "WRITE"
	MembershipRoleRead  = "READ"
)

var ErrInvalidMembershipRole = errors.New("invalid membership role")

// AccountMembership grants a user access to an account.
type AccountMembership struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_account_user" json:"account_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_account_user;index" json:"user_id"`
	Role      string    `gorm:"type:varchar(10);not null" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (m *AccountMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if m.AccountID == uuid.Nil || m.UserID == uuid.Nil {
		return errors.New("account ID and user ID are required")
	}

	if !IsValidMembershipRole(m.Role) {
		return ErrInvalidMembershipRole
	}

	return nil
}

// CanWrite reports whether the member may move money or change the account.
func (m *AccountMembership) CanWrite() bool {
	return m.Role == MembershipRoleOwner || m.Role == MembershipRoleWrite
}

func (m *AccountMembership) IsOwner() bool {
	return m.Role == MembershipRoleOwner
}

func (m *AccountMembership) TableName() string {
	return "account_memberships"
}

func IsValidMembershipRole(role string) bool {
	switch role {
	case MembershipRoleOwner, MembershipRoleWrite, MembershipRoleRead:
		return true
	default:
		return false
	}
}
