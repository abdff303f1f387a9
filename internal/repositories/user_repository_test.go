package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"ledger-engine/internal/database"
	"ledger-engine/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
	ctx  context.Context
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
	s.ctx = context.Background()
}

func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUserRepository_Create() {
	user := &models.User{
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
	}

	err := s.repo.Create(s.ctx, user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.Equal(models.RoleCustomer, user.Role)
	s.NotZero(user.CreatedAt)
	s.NotZero(user.UpdatedAt)
}

func (s *UserRepositorySuite) TestUserRepository_CreateDuplicate() {
	user := &models.User{Email: "dup@example.com", FirstName: "Test", LastName: "User"}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	again := &models.User{Email: "dup@example.com", FirstName: "Other", LastName: "User"}
	s.ErrorIs(s.repo.Create(s.ctx, again), ErrUserAlreadyExists)

	s.Error(s.repo.Create(s.ctx, nil))
}

func (s *UserRepositorySuite) TestUserRepository_GetByEmail() {
	user := &models.User{Email: "test@example.com", FirstName: "Test", LastName: "User"}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	foundUser, err := s.repo.GetByEmail(s.ctx, "TEST@example.com")
	s.NoError(err)
	s.Equal(user.ID, foundUser.ID)

	_, err = s.repo.GetByEmail(s.ctx, "nonexistent@example.com")
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_GetByID() {
	user := &models.User{Email: "byid@example.com", FirstName: "Test", LastName: "User", Role: models.RoleAdmin}
	s.Require().NoError(s.repo.Create(s.ctx, user))

	found, err := s.repo.GetByID(s.ctx, user.ID)
	s.NoError(err)
	s.True(found.IsAdmin())

	_, err = s.repo.GetByID(s.ctx, uuid.New())
	s.Equal(ErrUserNotFound, err)
}

func (s *UserRepositorySuite) TestUserRepository_ListUsers() {
	for i := 0; i < 5; i++ {
		user := &models.User{
			Email:     fmt.Sprintf("user%d@example.com", i),
			FirstName: "Test",
			LastName:  strings.Repeat("x", i+1),
		}
		s.Require().NoError(s.repo.Create(s.ctx, user))
	}

	users, total, err := s.repo.ListUsers(s.ctx, 0, 3)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(users, 3)

	users, total, err = s.repo.ListUsers(s.ctx, 3, 3)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(users, 2)
}
