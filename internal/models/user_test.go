package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid user",
			user: User{
				Email:     "test@example.com",
				FirstName: "John",
				LastName:  "Doe",
				Role:      RoleCustomer,
			},
			wantErr: false,
		},
		{
			name: "invalid email",
			user: User{
				Email:     "invalid-email",
				FirstName: "John",
				LastName:  "Doe",
				Role:      RoleCustomer,
			},
			wantErr: true,
			errMsg:  "invalid email format",
		},
		{
			name: "empty email",
			user: User{
				Email:     "",
				FirstName: "John",
				LastName:  "Doe",
				Role:      RoleCustomer,
			},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name: "empty first name",
			user: User{
				Email:     "test@example.com",
				FirstName: "",
				LastName:  "Doe",
				Role:      RoleCustomer,
			},
			wantErr: true,
			errMsg:  "first name is required",
		},
		{
			name: "empty last name",
			user: User{
				Email:     "test@example.com",
				FirstName: "John",
				LastName:  "",
				Role:      RoleCustomer,
			},
			wantErr: true,
			errMsg:  "last name is required",
		},
		{
			name: "invalid role",
			user: User{
				Email:     "test@example.com",
				FirstName: "John",
				LastName:  "Doe",
				Role:      "invalid",
			},
			wantErr: true,
			errMsg:  "invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUser_BeforeCreate(t *testing.T) {
	user := User{
		Email:     "test@example.com",
		FirstName: "John",
		LastName:  "Doe",
	}

	err := user.BeforeCreate(nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, RoleCustomer, user.Role)
	assert.NotZero(t, user.CreatedAt)
	assert.NotZero(t, user.UpdatedAt)
}

func TestUser_RoleHelpers(t *testing.T) {
	admin := User{FirstName: "Ada", LastName: "Admin", Role: RoleAdmin}
	customer := User{FirstName: "Carl", LastName: "Customer", Role: RoleCustomer}

	assert.True(t, admin.IsAdmin())
	assert.False(t, customer.IsAdmin())
	assert.Equal(t, "Ada Admin", admin.FullName())
}
