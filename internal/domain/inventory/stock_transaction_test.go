package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockTransaction(t *testing.T) {
	bookID := uuid.New()
	batchID := uuid.New()

	t.Run("creates IN entry referencing a batch", func(t *testing.T) {
		txn, err := NewStockTransaction(bookID, batchID, TransactionTypeIn, decimal.NewFromInt(100), RefTypeReceipt, "PO-001")
		require.NoError(t, err)

		require.NotNil(t, txn.BatchID)
		assert.Equal(t, batchID, *txn.BatchID)
		assert.Equal(t, TransactionTypeIn, txn.Type)
		assert.Equal(t, RefTypeReceipt, txn.RefType)
	})

	t.Run("rejects reservation types", func(t *testing.T) {
		_, err := NewStockTransaction(bookID, batchID, TransactionTypeReserve, decimal.NewFromInt(10), RefTypeBundleReservation, "BND-1")
		assert.Error(t, err)
	})

	t.Run("rejects empty batch ID", func(t *testing.T) {
		_, err := NewStockTransaction(bookID, uuid.Nil, TransactionTypeOut, decimal.NewFromInt(10), RefTypeSalesIssue, "SALE-1")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewStockTransaction(bookID, batchID, TransactionTypeOut, decimal.Zero, RefTypeSalesIssue, "SALE-1")
		assert.Error(t, err)
	})

	t.Run("rejects empty reference", func(t *testing.T) {
		_, err := NewStockTransaction(bookID, batchID, TransactionTypeOut, decimal.NewFromInt(1), "", "SALE-1")
		assert.Error(t, err)

		_, err = NewStockTransaction(bookID, batchID, TransactionTypeOut, decimal.NewFromInt(1), RefTypeSalesIssue, "")
		assert.Error(t, err)
	})
}

func TestNewReservationTransaction(t *testing.T) {
	bookID := uuid.New()

	t.Run("creates RESERVE entry without batch", func(t *testing.T) {
		txn, err := NewReservationTransaction(bookID, TransactionTypeReserve, decimal.NewFromInt(40), RefTypeBundleReservation, "BND-1")
		require.NoError(t, err)

		assert.Nil(t, txn.BatchID)
		assert.Equal(t, TransactionTypeReserve, txn.Type)
	})

	t.Run("rejects batch-bound types", func(t *testing.T) {
		_, err := NewReservationTransaction(bookID, TransactionTypeOut, decimal.NewFromInt(10), RefTypeSalesIssue, "SALE-1")
		assert.Error(t, err)
	})
}

func TestTransactionType(t *testing.T) {
	assert.True(t, TransactionTypeIn.TouchesBatch())
	assert.True(t, TransactionTypeOut.TouchesBatch())
	assert.False(t, TransactionTypeReserve.TouchesBatch())
	assert.False(t, TransactionTypeUnreserve.TouchesBatch())
	assert.False(t, TransactionType("ADJUST").IsValid())
}
