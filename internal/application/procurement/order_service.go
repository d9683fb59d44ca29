package procurement

import (
	"context"

	stock "github.com/bookdist/backend/internal/application/inventory"
	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService coordinates the purchase order lifecycle with the stock
// ledger and the supplier's financial ledger. A goods receipt updates the
// order lines, creates the stock batches and posts the supplier credit in
// one transaction; if any part fails the whole receipt rolls back.
type OrderService struct {
	txScope        stock.TransactionScope
	orderRepo      procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope stock.TransactionScope,
	orderRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
) *OrderService {
	return &OrderService{
		txScope:      txScope,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *OrderService) publishDomainEvents(ctx context.Context, order *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}

// CreateOrder creates a draft order and attaches any open requirements it
// is meant to cover.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot order from an inactive supplier")
	}

	orderDiscount, err := req.Discount.ToDiscount()
	if err != nil {
		return nil, err
	}

	order, err := procurement.NewPurchaseOrder(req.OrderNumber, req.SupplierID, orderDiscount)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		lineDiscount, err := line.Discount.ToDiscount()
		if err != nil {
			return nil, err
		}
		if err := order.AddLine(line.BookID, line.Quantity, line.UnitPrice, lineDiscount); err != nil {
			return nil, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos stock.TransactionalRepositories) error {
		if existing, err := repos.OrderRepo().FindByOrderNumber(ctx, req.OrderNumber); err == nil && existing != nil {
			return shared.ErrAlreadyExists
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		for _, reqID := range req.RequirementIDs {
			requirement, err := repos.RequirementRepo().FindByID(ctx, reqID)
			if err != nil {
				return err
			}
			if err := requirement.AttachToOrder(order.ID); err != nil {
				return err
			}
			if err := repos.RequirementRepo().Update(ctx, requirement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// MarkSent transitions the order from draft to sent
func (s *OrderService) MarkSent(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *procurement.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos stock.TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.MarkSent(); err != nil {
			return err
		}
		return repos.OrderRepo().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// ReceiveGoods books a delivery: each line updates the order, creates a
// batch priced at the line's discounted unit cost, and the receipt total is
// credited to the supplier's ledger. The posting is keyed by the receipt
// reference, so re-running a receipt that partially committed cannot double
// the supplier's balance; duplicate batches for the same receipt are
// rejected before anything is written.
func (s *OrderService) ReceiveGoods(ctx context.Context, req ReceiveGoodsRequest) (*OrderResponse, error) {
	var order *procurement.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos stock.TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}
		supplier, err := s.supplierRepo.FindByID(ctx, order.SupplierID)
		if err != nil {
			return err
		}

		receiptAmount := decimal.Zero
		for _, line := range req.Lines {
			orderLine, ok := order.LineForBook(line.BookID)
			if !ok {
				return shared.NewDomainError("LINE_NOT_FOUND", "Order has no line for this book")
			}
			if err := order.RecordReceipt(line.BookID, line.Quantity); err != nil {
				return err
			}

			discount := valueobject.ResolveDiscount(orderLine.Discount, order.Discount, supplier.DefaultDiscount)
			unitCost := discount.Apply(orderLine.UnitPrice)
			if _, err := stock.ReceiveInScope(ctx, repos, stock.ReceiveStockRequest{
				BookID:    line.BookID,
				Quantity:  line.Quantity,
				UnitCost:  unitCost,
				SourceRef: req.ReceiptRef,
			}); err != nil {
				return err
			}
			receiptAmount = receiptAmount.Add(unitCost.Mul(line.Quantity))
		}

		if receiptAmount.GreaterThan(decimal.Zero) {
			posting, err := finance.NewLedgerPosting(
				finance.PartyTypeSupplier, order.SupplierID,
				finance.RefTypeGoodsReceipt, req.ReceiptRef,
				finance.PostingDirectionCredit, receiptAmount, order.OrderNumber,
			)
			if err != nil {
				return err
			}
			if err := repos.PostingRepo().Save(ctx, posting); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		// A completed order closes the requirements it was covering
		if order.Status() == procurement.OrderStatusCompleted {
			requirements, err := repos.RequirementRepo().FindByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, requirement := range requirements {
				if err := requirement.Close(); err != nil {
					return err
				}
				if err := repos.RequirementRepo().Update(ctx, requirement); err != nil {
					return err
				}
			}
		}

		order.AddDomainEvent(procurement.NewOrderReceivedEvent(order, req.ReceiptRef, receiptAmount))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// UndoReceipt unwinds a goods receipt: the batches it created are emptied
// via compensating entries, the order lines drop back, and the supplier
// posting is removed. It fails once any batch from the receipt has been
// consumed.
func (s *OrderService) UndoReceipt(ctx context.Context, orderID uuid.UUID, receiptRef string) (*OrderResponse, error) {
	if receiptRef == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_REF", "Receipt reference cannot be empty")
	}

	var order *procurement.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos stock.TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		batches, err := stock.ReverseReceiptInScope(ctx, repos, receiptRef)
		if err != nil {
			return err
		}
		for _, batch := range batches {
			if err := order.UndoReceipt(batch.BookID, batch.ReceivedQuantity); err != nil {
				return err
			}
		}
		if err := repos.PostingRepo().DeleteByKey(ctx, finance.PartyTypeSupplier, order.SupplierID, finance.RefTypeGoodsReceipt, receiptRef); err != nil {
			return err
		}
		return repos.OrderRepo().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// CancelOrder cancels an order and reopens the requirements it covered.
// Cancelling an already cancelled order is a no-op.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var order *procurement.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos stock.TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		requirements, err := repos.RequirementRepo().FindByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, requirement := range requirements {
			if requirement.Status != procurement.RequirementStatusOrdered {
				continue
			}
			if err := requirement.Reopen(); err != nil {
				return err
			}
			if err := repos.RequirementRepo().Update(ctx, requirement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// GetOrder retrieves an order with its derived status
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders lists orders with pagination
func (s *OrderService) ListOrders(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if filter.Page <= 0 {
			filter.Page = defaults.Page
		}
		if filter.PageSize <= 0 {
			filter.PageSize = defaults.PageSize
		}
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, ToOrderResponse(order))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
