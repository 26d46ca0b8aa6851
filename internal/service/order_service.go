// Package service implements the business rules of the back office on top of
// the repository layer. Every tenant-scoped method takes the tenant id
// explicitly and re-checks it against the request context before touching
// storage.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/marketplace"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// OrderLineInput is one requested product line for order creation.
type OrderLineInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// OrderService drives the order lifecycle: creation with stock reservation,
// status transitions with inventory restoration, and deletion.
type OrderService struct {
	store    repository.Store
	notifier marketplace.Notifier
}

// NewOrderService creates a new OrderService
func NewOrderService(store repository.Store, notifier marketplace.Notifier) *OrderService {
	return &OrderService{store: store, notifier: notifier}
}

// GetOrder returns one order with its customer, address, status and items.
func (s *OrderService) GetOrder(ctx context.Context, tenantID, orderID uint) (*model.Order, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Orders().FindByID(ctx, tenantID, orderID)
}

// ListOrders returns a page of the tenant's orders.
func (s *OrderService) ListOrders(ctx context.Context, tenantID uint, limit, offset int) ([]model.Order, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Orders().List(ctx, tenantID, limit, offset)
}

// CreateOrder places a new order. All lines are reserved in one transaction:
// stock is decremented conditionally per line, the unit price is snapshotted
// into the line, and any failure aborts the whole order, so there are no
// partial orders and no partially decremented stock.
func (s *OrderService) CreateOrder(ctx context.Context, tenantID, customerID, addressID uint, lines []OrderLineInput) (*model.Order, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if customerID == 0 {
		return nil, apperr.NewInvalidRequest("customer id is required")
	}
	if addressID == 0 {
		return nil, apperr.NewInvalidRequest("address id is required")
	}
	if len(lines) == 0 {
		return nil, apperr.NewInvalidRequest("order must contain at least one item")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, apperr.NewInvalidRequest("quantity must be at least 1 for product %d", line.ProductID)
		}
	}

	var order *model.Order
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, tenantID, customerID); err != nil {
			return err
		}
		if _, err := tx.Addresses().FindByID(ctx, tenantID, addressID); err != nil {
			return err
		}

		// The "Created" row is seeded at deployment; its absence is a
		// configuration error, not a user error.
		created, err := tx.OrderStatuses().FindByName(ctx, model.StatusCreated)
		if err != nil {
			return fmt.Errorf("order status %q is not configured: %w", model.StatusCreated, err)
		}

		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			product, err := tx.Products().FindByID(ctx, tenantID, line.ProductID)
			if err != nil {
				return err
			}
			if err := tx.Products().DecrementStock(ctx, tenantID, product.ID, line.Quantity); err != nil {
				return err
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, model.OrderItem{
				TenantID:   tenantID,
				ProductID:  product.ID,
				Quantity:   line.Quantity,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal,
			})
			total = total.Add(lineTotal)
		}

		order = &model.Order{
			TenantID:    tenantID,
			CustomerID:  customerID,
			AddressID:   addressID,
			StatusID:    created.ID,
			TotalAmount: total,
		}
		order.Items = items
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		s.notifier.NotifyProductChanged(tenantID, item.ProductID)
	}
	log.Info("Order created",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("order_id", order.ID),
		zap.Int("item_count", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.String()))
	return s.store.Orders().FindByID(ctx, tenantID, order.ID)
}

// UpdateOrderStatus moves an order to the given status and appends the
// comment to the order's running log. Moving into "Canceled" or "Returned"
// from any other kind of status restores the stock of every line inside the
// same transaction. Cancellation of a delivered or completed order is refused.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, tenantID, orderID, newStatusID uint, comment string) (*model.Order, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	var restored []uint
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		newStatus, err := tx.OrderStatuses().FindByID(ctx, newStatusID)
		if err != nil {
			return err
		}
		current, err := tx.OrderStatuses().FindByID(ctx, order.StatusID)
		if err != nil {
			return err
		}

		if isCancelLike(newStatus.StatusName) {
			switch current.StatusName {
			case model.StatusDelivered, model.StatusCompleted:
				return apperr.NewConflict("order %d cannot be canceled from status %q", orderID, current.StatusName)
			}
		}

		// Restore inventory exactly once: only on the transition into a
		// cancel-like status from a non-cancel-like one.
		if isCancelLike(newStatus.StatusName) && !isCancelLike(current.StatusName) {
			items, err := tx.OrderItems().ListByOrder(ctx, tenantID, orderID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if err := tx.Products().RestoreStock(ctx, tenantID, item.ProductID, item.Quantity); err != nil {
					return err
				}
				restored = append(restored, item.ProductID)
			}
		}

		order.StatusID = newStatus.ID
		order.Status = nil
		order.Comment = appendStatusComment(order.Comment, newStatus.StatusName, comment)
		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	for _, productID := range restored {
		s.notifier.NotifyProductChanged(tenantID, productID)
	}
	log.Info("Order status updated",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("order_id", orderID),
		zap.Uint("status_id", newStatusID),
		zap.Int("restored_products", len(restored)))
	return s.store.Orders().FindByID(ctx, tenantID, orderID)
}

// CancelOrder moves the order to "Canceled". Refused when the order was
// already canceled or returned, so stock is never restored twice, and refused
// after delivery or completion.
func (s *OrderService) CancelOrder(ctx context.Context, tenantID, orderID uint, reason string) (*model.Order, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.store.Orders().FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	current, err := s.store.OrderStatuses().FindByID(ctx, order.StatusID)
	if err != nil {
		return nil, err
	}
	switch current.StatusName {
	case model.StatusDelivered, model.StatusCompleted:
		return nil, apperr.NewConflict("order %d cannot be canceled from status %q", orderID, current.StatusName)
	case model.StatusCanceled, model.StatusReturned:
		return nil, apperr.NewConflict("order %d is already in status %q", orderID, current.StatusName)
	}

	canceled, err := s.store.OrderStatuses().FindByName(ctx, model.StatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("order status %q is not configured: %w", model.StatusCanceled, err)
	}
	return s.UpdateOrderStatus(ctx, tenantID, orderID, canceled.ID, reason)
}

// ProcessOrderPayment moves the order to "Paid". Payment is accepted only
// while the order is still in "Created".
func (s *OrderService) ProcessOrderPayment(ctx context.Context, tenantID, orderID uint, paymentRef string) (*model.Order, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	order, err := s.store.Orders().FindByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	current, err := s.store.OrderStatuses().FindByID(ctx, order.StatusID)
	if err != nil {
		return nil, err
	}
	if current.StatusName != model.StatusCreated {
		return nil, apperr.NewConflict("order %d cannot be paid from status %q", orderID, current.StatusName)
	}

	paid, err := s.store.OrderStatuses().FindByName(ctx, model.StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("order status %q is not configured: %w", model.StatusPaid, err)
	}
	comment := "Payment processed"
	if paymentRef != "" {
		comment = "Payment processed, reference " + paymentRef
	}
	return s.UpdateOrderStatus(ctx, tenantID, orderID, paid.ID, comment)
}

// DeleteOrder removes a canceled or returned order together with its items.
// Stock is not touched: restoration already happened at the cancel or return
// transition.
func (s *OrderService) DeleteOrder(ctx context.Context, tenantID, orderID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().FindByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		current, err := tx.OrderStatuses().FindByID(ctx, order.StatusID)
		if err != nil {
			return err
		}
		if !isCancelLike(current.StatusName) {
			return apperr.NewConflict("order %d cannot be deleted in status %q", orderID, current.StatusName)
		}
		return tx.Orders().Delete(ctx, tenantID, orderID)
	})
	if err != nil {
		return err
	}

	log.Info("Order deleted", zap.Uint("tenant_id", tenantID), zap.Uint("order_id", orderID))
	return nil
}

// isCancelLike reports whether the status name triggers inventory
// restoration and permits deletion.
func isCancelLike(statusName string) bool {
	return statusName == model.StatusCanceled || statusName == model.StatusReturned
}

// appendStatusComment appends one annotated entry to the order's running
// comment log.
func appendStatusComment(existing, statusName, comment string) string {
	entry := "Status changed to " + statusName
	if strings.TrimSpace(comment) != "" {
		entry += ": " + strings.TrimSpace(comment)
	}
	if existing == "" {
		return entry
	}
	return existing + "\n" + entry
}
