package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name    string
		tx      Transaction
		wantErr error
	}{
		{
			name: "valid outgoing",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindOutgoing,
				Amount:       decimal.RequireFromString("-25.00"),
				BalanceAfter: decimal.RequireFromString("75.00"),
			},
		},
		{
			name: "valid interest",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindInterest,
				Amount:       decimal.RequireFromString("0.27"),
				BalanceAfter: decimal.RequireFromString("10000.27"),
			},
		},
		{
			name: "outgoing with positive amount",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindOutgoing,
				Amount:       decimal.NewFromInt(5),
				BalanceAfter: decimal.NewFromInt(5),
			},
			wantErr: ErrTransactionSign,
		},
		{
			name: "incoming with negative amount",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindIncoming,
				Amount:       decimal.NewFromInt(-5),
				BalanceAfter: decimal.NewFromInt(5),
			},
			wantErr: ErrTransactionSign,
		},
		{
			name: "zero amount",
			tx: Transaction{
				AccountID: accountID,
				Kind:      TransactionKindIncoming,
				Amount:    decimal.Zero,
			},
			wantErr: ErrNonPositiveAmount,
		},
		{
			name: "unknown kind",
			tx: Transaction{
				AccountID: accountID,
				Kind:      "REFUND",
				Amount:    decimal.NewFromInt(1),
			},
			wantErr: ErrInvalidTransactionKind,
		},
		{
			name: "negative balance after",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindOutgoing,
				Amount:       decimal.NewFromInt(-5),
				BalanceAfter: decimal.NewFromInt(-1),
			},
			wantErr: ErrInvalidBalance,
		},
		{
			name: "note too long",
			tx: Transaction{
				AccountID:    accountID,
				Kind:         TransactionKindIncoming,
				Amount:       decimal.NewFromInt(5),
				BalanceAfter: decimal.NewFromInt(5),
				Note:         strings.Repeat("x", MaxNoteLength+1),
			},
			wantErr: ErrNoteTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_BeforeCreate(t *testing.T) {
	tx := Transaction{
		AccountID:    uuid.New(),
		Kind:         TransactionKindIncoming,
		Amount:       decimal.RequireFromString("10.5"),
		BalanceAfter: decimal.RequireFromString("10.5"),
	}

	require.NoError(t, tx.BeforeCreate(nil))

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.True(t, strings.HasPrefix(tx.Reference, "TXN-"))
	assert.False(t, tx.CreatedAt.IsZero())
	assert.Equal(t, "10.5000", tx.Amount.StringFixed(MoneyScale))
	assert.False(t, tx.IsDebit())
}

func TestGenerateTransactionReference(t *testing.T) {
	a := GenerateTransactionReference()
	b := GenerateTransactionReference()

	assert.True(t, strings.HasPrefix(a, "TXN-"))
	assert.NotEqual(t, a, b)
}
