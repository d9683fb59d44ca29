package inventory

import (
	"testing"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	bookID := uuid.New()

	t.Run("creates batch with full quantity available", func(t *testing.T) {
		batch, err := NewBatch(bookID, decimal.NewFromInt(100), decimal.NewFromFloat(12.5), "PO-001")
		require.NoError(t, err)

		assert.Equal(t, bookID, batch.BookID)
		assert.Equal(t, "PO-001", batch.SourceRef)
		assert.True(t, batch.ReceivedQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, batch.AvailableQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, batch.IsUntouched())
		assert.NotEqual(t, uuid.Nil, batch.ID)
	})

	t.Run("rejects empty book ID", func(t *testing.T) {
		_, err := NewBatch(uuid.Nil, decimal.NewFromInt(10), decimal.Zero, "PO-001")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewBatch(bookID, decimal.Zero, decimal.Zero, "PO-001")
		assert.Error(t, err)

		_, err = NewBatch(bookID, decimal.NewFromInt(-5), decimal.Zero, "PO-001")
		assert.Error(t, err)
	})

	t.Run("rejects negative unit cost", func(t *testing.T) {
		_, err := NewBatch(bookID, decimal.NewFromInt(10), decimal.NewFromInt(-1), "PO-001")
		assert.Error(t, err)
	})

	t.Run("rejects empty source ref", func(t *testing.T) {
		_, err := NewBatch(bookID, decimal.NewFromInt(10), decimal.Zero, "")
		assert.Error(t, err)
	})
}

func TestBatch_Deduct(t *testing.T) {
	newBatch := func(t *testing.T, qty int64) *Batch {
		batch, err := NewBatch(uuid.New(), decimal.NewFromInt(qty), decimal.NewFromInt(10), "PO-001")
		require.NoError(t, err)
		return batch
	}

	t.Run("reduces available quantity", func(t *testing.T) {
		batch := newBatch(t, 100)

		err := batch.Deduct(decimal.NewFromInt(30))
		require.NoError(t, err)

		assert.True(t, batch.AvailableQuantity.Equal(decimal.NewFromInt(70)))
		assert.True(t, batch.ReceivedQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, batch.ConsumedQuantity().Equal(decimal.NewFromInt(30)))
		assert.False(t, batch.IsUntouched())
	})

	t.Run("can drain the batch completely", func(t *testing.T) {
		batch := newBatch(t, 50)

		err := batch.Deduct(decimal.NewFromInt(50))
		require.NoError(t, err)

		assert.True(t, batch.IsExhausted())
		assert.False(t, batch.HasStock())
	})

	t.Run("fails when quantity exceeds available", func(t *testing.T) {
		batch := newBatch(t, 10)

		err := batch.Deduct(decimal.NewFromInt(11))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, batch.AvailableQuantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		batch := newBatch(t, 10)

		assert.Error(t, batch.Deduct(decimal.Zero))
		assert.Error(t, batch.Deduct(decimal.NewFromInt(-3)))
	})
}

func TestBatch_Restore(t *testing.T) {
	t.Run("returns deducted quantity", func(t *testing.T) {
		batch, err := NewBatch(uuid.New(), decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-001")
		require.NoError(t, err)
		require.NoError(t, batch.Deduct(decimal.NewFromInt(40)))

		err = batch.Restore(decimal.NewFromInt(40))
		require.NoError(t, err)

		assert.True(t, batch.AvailableQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, batch.IsUntouched())
	})

	t.Run("fails beyond received quantity", func(t *testing.T) {
		batch, err := NewBatch(uuid.New(), decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-001")
		require.NoError(t, err)
		require.NoError(t, batch.Deduct(decimal.NewFromInt(10)))

		err = batch.Restore(decimal.NewFromInt(11))
		assert.ErrorIs(t, err, shared.ErrInvariantViolation)
		assert.True(t, batch.AvailableQuantity.Equal(decimal.NewFromInt(90)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		batch, err := NewBatch(uuid.New(), decimal.NewFromInt(100), decimal.NewFromInt(10), "PO-001")
		require.NoError(t, err)

		assert.Error(t, batch.Restore(decimal.Zero))
	})
}

func TestBatch_TotalValue(t *testing.T) {
	batch, err := NewBatch(uuid.New(), decimal.NewFromInt(20), decimal.NewFromFloat(7.5), "PO-001")
	require.NoError(t, err)
	require.NoError(t, batch.Deduct(decimal.NewFromInt(4)))

	assert.True(t, batch.TotalValue().Equal(decimal.NewFromInt(120)))
}
