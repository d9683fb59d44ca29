package procurement

import (
	"context"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BusinessMetricsRecorder is the subset of the telemetry metrics surface
// the event-driven recorder needs
type BusinessMetricsRecorder interface {
	RecordOrderCreated(ctx context.Context, supplierID uuid.UUID)
	RecordAllocation(ctx context.Context, bookID uuid.UUID, quantity decimal.Decimal, partial bool)
	RecordReversal(ctx context.Context, refType string)
	RecordPosting(ctx context.Context, side string, amount decimal.Decimal)
}

// MetricsHandler feeds business counters from domain events. It is a
// notification-grade listener: recording failures never propagate back
// into the mutation that raised the event.
type MetricsHandler struct {
	recorder BusinessMetricsRecorder
	logger   *zap.Logger
}

// NewMetricsHandler creates a new handler that records business metrics
func NewMetricsHandler(recorder BusinessMetricsRecorder, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{recorder: recorder, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		procurement.EventTypeOrderCreated,
		procurement.EventTypeOrderReceived,
		inventory.EventTypeStockAllocated,
		inventory.EventTypeAllocationReversed,
		inventory.EventTypeReceiptReversed,
	}
}

// Handle records the counter matching the event type. Unknown events are
// ignored rather than failed, so new event types never break metrics.
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *procurement.OrderCreatedEvent:
		h.recorder.RecordOrderCreated(ctx, e.SupplierID)
	case *procurement.OrderReceivedEvent:
		h.recorder.RecordPosting(ctx, string(finance.PostingDirectionCredit), e.NetAmount)
	case *inventory.StockAllocatedEvent:
		h.recorder.RecordAllocation(ctx, e.BookID, e.IssuedQuantity, e.ShortQuantity.IsPositive())
	case *inventory.AllocationReversedEvent:
		h.recorder.RecordReversal(ctx, "ALLOCATION")
	case *inventory.ReceiptReversedEvent:
		h.recorder.RecordReversal(ctx, "RECEIPT")
	default:
		h.logger.Debug("ignoring event without a metrics mapping",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}
