package inventory

import (
	"context"
	"fmt"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShortfallHandler listens for allocation events and raises a warning
// whenever an allocation was short-delivered. Purchasing watches these
// logs to decide which books to reorder.
type ShortfallHandler struct {
	logger *zap.Logger
}

// NewShortfallHandler creates a new handler for stock allocated events
func NewShortfallHandler(logger *zap.Logger) *ShortfallHandler {
	return &ShortfallHandler{logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ShortfallHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockAllocated}
}

// Handle processes a StockAllocatedEvent
func (h *ShortfallHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	allocated, ok := event.(*inventory.StockAllocatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockAllocated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockAllocated, event.EventType())
	}

	if !allocated.ShortQuantity.IsPositive() {
		return nil
	}

	h.logger.Warn("allocation short-delivered",
		zap.String("book_id", allocated.BookID.String()),
		zap.String("requester_ref", allocated.RequesterRef),
		zap.String("requested", allocated.RequestedQuantity.String()),
		zap.String("issued", allocated.IssuedQuantity.String()),
		zap.String("short", allocated.ShortQuantity.String()),
	)
	return nil
}
