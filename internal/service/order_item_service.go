package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/marketplace"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// OrderItemService edits order lines after order creation. Every mutation
// settles the stock delta against the product and recomputes the owning
// order's total from the full current set of lines, inside one transaction.
type OrderItemService struct {
	store    repository.Store
	notifier marketplace.Notifier
}

// NewOrderItemService creates a new OrderItemService
func NewOrderItemService(store repository.Store, notifier marketplace.Notifier) *OrderItemService {
	return &OrderItemService{store: store, notifier: notifier}
}

// GetItem returns one order line.
func (s *OrderItemService) GetItem(ctx context.Context, tenantID, itemID uint) (*model.OrderItem, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.OrderItems().FindByID(ctx, tenantID, itemID)
}

// ListItems returns the lines of one order.
func (s *OrderItemService) ListItems(ctx context.Context, tenantID, orderID uint) ([]model.OrderItem, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if _, err := s.store.Orders().FindByID(ctx, tenantID, orderID); err != nil {
		return nil, err
	}
	return s.store.OrderItems().ListByOrder(ctx, tenantID, orderID)
}

// AddItem appends a new line to an existing order. The product must not
// already appear on the order; quantity adjustments go through UpdateItem.
// Stock is decremented conditionally and the unit price snapshotted, like at
// order creation.
func (s *OrderItemService) AddItem(ctx context.Context, tenantID, orderID, productID uint, quantity int) (*model.OrderItem, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperr.NewInvalidRequest("quantity must be at least 1")
	}

	var item *model.OrderItem
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Orders().FindByID(ctx, tenantID, orderID); err != nil {
			return err
		}
		if existing, err := tx.OrderItems().FindByOrderAndProduct(ctx, tenantID, orderID, productID); err == nil && existing != nil {
			return apperr.NewConflict("order %d already contains product %d", orderID, productID)
		} else if err != nil && !apperr.IsNotFound(err) {
			return err
		}

		product, err := tx.Products().FindByID(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if err := tx.Products().DecrementStock(ctx, tenantID, productID, quantity); err != nil {
			return err
		}

		item = &model.OrderItem{
			TenantID:   tenantID,
			OrderID:    orderID,
			ProductID:  productID,
			Quantity:   quantity,
			UnitPrice:  product.Price,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		if err := tx.OrderItems().Create(ctx, item); err != nil {
			return err
		}
		return recomputeOrderTotal(ctx, tx, tenantID, orderID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyProductChanged(tenantID, productID)
	log.Info("Order item added",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("order_id", orderID),
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity))
	return item, nil
}

// UpdateItem changes the quantity of a line. An increase must be covered by
// current stock; a decrease returns the difference to stock. The unit price
// snapshot never changes.
func (s *OrderItemService) UpdateItem(ctx context.Context, tenantID, itemID uint, quantity int) (*model.OrderItem, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, apperr.NewInvalidRequest("quantity must be at least 1")
	}

	var item *model.OrderItem
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		item, err = tx.OrderItems().FindByID(ctx, tenantID, itemID)
		if err != nil {
			return err
		}

		delta := quantity - item.Quantity
		switch {
		case delta > 0:
			if err := tx.Products().DecrementStock(ctx, tenantID, item.ProductID, delta); err != nil {
				return err
			}
		case delta < 0:
			if err := tx.Products().RestoreStock(ctx, tenantID, item.ProductID, -delta); err != nil {
				return err
			}
		default:
			return nil
		}

		item.Quantity = quantity
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		if err := tx.OrderItems().Update(ctx, item); err != nil {
			return err
		}
		return recomputeOrderTotal(ctx, tx, tenantID, item.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyProductChanged(tenantID, item.ProductID)
	log.Info("Order item updated",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("order_item_id", itemID),
		zap.Int("quantity", quantity))
	return item, nil
}

// DeleteItem removes a line, returning its quantity to stock.
func (s *OrderItemService) DeleteItem(ctx context.Context, tenantID, itemID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}

	var productID uint
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		item, err := tx.OrderItems().FindByID(ctx, tenantID, itemID)
		if err != nil {
			return err
		}
		productID = item.ProductID

		if err := tx.Products().RestoreStock(ctx, tenantID, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := tx.OrderItems().Delete(ctx, tenantID, itemID); err != nil {
			return err
		}
		return recomputeOrderTotal(ctx, tx, tenantID, item.OrderID)
	})
	if err != nil {
		return err
	}

	s.notifier.NotifyProductChanged(tenantID, productID)
	log.Info("Order item deleted",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("order_item_id", itemID))
	return nil
}

// recomputeOrderTotal rebuilds the order total from the full current set of
// lines. It never adjusts the stored total incrementally, so repeated edits
// cannot drift it away from the line sum.
func recomputeOrderTotal(ctx context.Context, tx repository.Store, tenantID, orderID uint) error {
	order, err := tx.Orders().FindByID(ctx, tenantID, orderID)
	if err != nil {
		return err
	}
	items, err := tx.OrderItems().ListByOrder(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	order.TotalAmount = total
	order.Status = nil
	order.Items = nil
	return tx.Orders().Update(ctx, order)
}
