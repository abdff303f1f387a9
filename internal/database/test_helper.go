package database

import (
	"fmt"
	"testing"

	"ledger-engine/internal/config"
	"ledger-engine/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testTables = []string{
	"audit_logs",
	"pending_approval_requests",
	"mobile_devices",
	"payments",
	"transactions",
	"account_memberships",
	"accounts",
	"users",
}

// SetupTestDB opens a migrated in-memory sqlite database. The pool is pinned
// to one connection so every query sees the same memory database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := testDB.CreateIndexes(); err != nil {
		t.Fatalf("failed to create test indexes: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	for _, table := range testTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleCustomer,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestAdminUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:     email,
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test admin user: %v", err)
	}

	return user
}

// CreateTestAccount creates an ACTIVE EUR account owned by owner with the
// given balance and a freshly generated IBAN.
func CreateTestAccount(t *testing.T, db *DB, owner *models.User, balance string) *models.Account {
	t.Helper()

	iban, err := models.GenerateIBAN("DE", "37040044")
	if err != nil {
		t.Fatalf("failed to generate IBAN: %v", err)
	}

	account := &models.Account{
		Name:     "Test Account",
		IBAN:     iban,
		Balance:  decimal.RequireFromString(balance),
		Currency: "EUR",
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	if owner != nil {
		membership := &models.AccountMembership{
			AccountID: account.ID,
			UserID:    owner.ID,
			Role:      models.MembershipRoleOwner,
		}
		if err := db.Create(membership).Error; err != nil {
			t.Fatalf("failed to create test membership: %v", err)
		}
	}

	return account
}
