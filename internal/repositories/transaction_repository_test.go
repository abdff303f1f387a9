package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"ledger-engine/internal/database"
	"ledger-engine/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionRepositorySuite struct {
	suite.Suite
	db      *database.DB
	repo    TransactionRepositoryInterface
	ledger  LedgerRepositoryInterface
	account *models.Account
	ctx     context.Context
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.ledger = NewLedgerRepository(s.db.DB, nil)
	owner := database.CreateTestUser(s.T(), s.db, gofakeit.Email())
	s.account = database.CreateTestAccount(s.T(), s.db, owner, "0")
	s.ctx = context.Background()
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionRepositorySuite) seed() []*models.Transaction {
	var entries []*models.Transaction

	txn, err := s.ledger.Credit(s.ctx, s.account.ID, decimal.RequireFromString("100.00"), models.LedgerEntry{Message: "salary"})
	s.Require().NoError(err)
	entries = append(entries, txn)

	txn, err = s.ledger.Debit(s.ctx, s.account.ID, decimal.RequireFromString("15.50"), models.LedgerEntry{Message: "groceries"})
	s.Require().NoError(err)
	entries = append(entries, txn)

	txn, err = s.ledger.Credit(s.ctx, s.account.ID, decimal.RequireFromString("0.42"), models.LedgerEntry{Kind: models.TransactionKindInterest})
	s.Require().NoError(err)
	entries = append(entries, txn)

	return entries
}

func (s *TransactionRepositorySuite) TestGetByID() {
	entries := s.seed()

	found, err := s.repo.GetByID(s.ctx, entries[1].ID)
	s.Require().NoError(err)
	s.Equal("-15.5000", found.Amount.StringFixed(4))
	s.Equal("84.5000", found.BalanceAfter.StringFixed(4))
	s.Equal(int64(2), found.Sequence)

	_, err = s.repo.GetByID(s.ctx, uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestListWithFilters() {
	s.seed()

	all, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{AccountID: s.account.ID})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(all, 3)

	outgoing, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		Kind:      models.TransactionKindOutgoing,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("groceries", outgoing[0].Message)

	minAmount := decimal.NewFromInt(10)
	maxAmount := decimal.NewFromInt(20)
	ranged, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		MinAmount: &minAmount,
		MaxAmount: &maxAmount,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(ranged, 1)
	s.Equal(int64(2), ranged[0].Sequence)

	fractional := decimal.RequireFromString("15.5")
	exact, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		MinAmount: &fractional,
		MaxAmount: &fractional,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(exact, 1)
	s.Equal("-15.5000", exact[0].Amount.StringFixed(4))

	page, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		Limit:     2,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(page, 2)
}

func (s *TransactionRepositorySuite) TestListWithFilters_DateRange() {
	s.seed()

	future := time.Now().UTC().Add(time.Hour)
	_, total, err := s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		StartDate: &future,
	})
	s.Require().NoError(err)
	s.Zero(total)

	_, total, err = s.repo.ListWithFilters(s.ctx, models.TransactionFilters{
		AccountID: s.account.ID,
		EndDate:   &future,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
}

func (s *TransactionRepositorySuite) TestGetLatestAndSum() {
	_, err := s.repo.GetLatestByAccountID(s.ctx, s.account.ID)
	s.ErrorIs(err, ErrTransactionNotFound)

	entries := s.seed()

	latest, err := s.repo.GetLatestByAccountID(s.ctx, s.account.ID)
	s.Require().NoError(err)
	s.Equal(entries[2].ID, latest.ID)

	sum, err := s.repo.SumByAccountID(s.ctx, s.account.ID)
	s.Require().NoError(err)
	s.Equal("84.9200", sum.StringFixed(4))
	s.True(sum.Equal(latest.BalanceAfter))
}

func (s *TransactionRepositorySuite) TestUpdateNote() {
	entries := s.seed()

	s.Require().NoError(s.repo.UpdateNote(s.ctx, entries[0].ID, "March salary"))

	found, err := s.repo.GetByID(s.ctx, entries[0].ID)
	s.Require().NoError(err)
	s.Equal("March salary", found.Note)
	s.Equal("100.0000", found.Amount.StringFixed(4))

	s.ErrorIs(s.repo.UpdateNote(s.ctx, entries[0].ID, strings.Repeat("n", models.MaxNoteLength+1)), models.ErrNoteTooLong)
	s.ErrorIs(s.repo.UpdateNote(s.ctx, uuid.New(), "ghost"), ErrTransactionNotFound)
}
