package procurement

import (
	"testing"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirement(t *testing.T) {
	schoolID := uuid.New()
	bookID := uuid.New()

	t.Run("new requirement is open", func(t *testing.T) {
		req, err := NewRequirement(schoolID, bookID, decimal.NewFromInt(30), "autumn term")
		require.NoError(t, err)

		assert.Equal(t, RequirementStatusOpen, req.Status)
		assert.Nil(t, req.OrderID)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewRequirement(schoolID, bookID, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("attach then reopen", func(t *testing.T) {
		req, err := NewRequirement(schoolID, bookID, decimal.NewFromInt(30), "")
		require.NoError(t, err)
		orderID := uuid.New()

		require.NoError(t, req.AttachToOrder(orderID))
		assert.Equal(t, RequirementStatusOrdered, req.Status)
		require.NotNil(t, req.OrderID)
		assert.Equal(t, orderID, *req.OrderID)

		assert.ErrorIs(t, req.AttachToOrder(uuid.New()), shared.ErrInvalidState)

		require.NoError(t, req.Reopen())
		assert.Equal(t, RequirementStatusOpen, req.Status)
		assert.Nil(t, req.OrderID)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		req, err := NewRequirement(schoolID, bookID, decimal.NewFromInt(30), "")
		require.NoError(t, err)

		require.NoError(t, req.Close())
		require.NoError(t, req.Close())
		assert.Equal(t, RequirementStatusClosed, req.Status)

		assert.ErrorIs(t, req.Reopen(), shared.ErrInvalidState)
	})
}
