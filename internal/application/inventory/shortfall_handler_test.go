package inventory

import (
	"context"
	"testing"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShortfallHandlerEventTypes(t *testing.T) {
	h := NewShortfallHandler(zap.NewNop())
	assert.Equal(t, []string{inventory.EventTypeStockAllocated}, h.EventTypes())
}

func TestShortfallHandlerWarnsOnShortDelivery(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := NewShortfallHandler(zap.New(core))

	allocation, err := inventory.NewAllocation("SCHOOL-001", uuid.New(), decimal.NewFromInt(50), decimal.NewFromInt(30))
	require.NoError(t, err)

	err = h.Handle(context.Background(), inventory.NewStockAllocatedEvent(allocation))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "allocation short-delivered", entries[0].Message)
}

func TestShortfallHandlerIgnoresFullDelivery(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := NewShortfallHandler(zap.New(core))

	allocation, err := inventory.NewAllocation("SCHOOL-001", uuid.New(), decimal.NewFromInt(50), decimal.NewFromInt(50))
	require.NoError(t, err)

	err = h.Handle(context.Background(), inventory.NewStockAllocatedEvent(allocation))
	require.NoError(t, err)
	assert.Empty(t, logs.All())
}

func TestShortfallHandlerRejectsWrongEventType(t *testing.T) {
	h := NewShortfallHandler(zap.NewNop())

	batch, err := inventory.NewBatch(uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(1), "GR-001")
	require.NoError(t, err)

	err = h.Handle(context.Background(), inventory.NewStockReceivedEvent(batch))
	assert.Error(t, err)
}
