package memstore

import (
	"context"
	"sort"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderItemRepo struct {
	s *Store
}

func (r *orderItemRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.OrderItem, error) {
	defer r.s.lock()()
	item, ok := r.s.data.orderItems[id]
	if !ok || item.TenantID != tenantID {
		return nil, apperr.NewNotFound("OrderItem", "id", id)
	}
	if product, found := r.s.data.products[item.ProductID]; found {
		item.Product = &product
	}
	return &item, nil
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, tenantID, orderID uint) ([]model.OrderItem, error) {
	defer r.s.lock()()
	var items []model.OrderItem
	for _, item := range r.s.data.orderItems {
		if item.TenantID == tenantID && item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *orderItemRepo) FindByOrderAndProduct(ctx context.Context, tenantID, orderID, productID uint) (*model.OrderItem, error) {
	defer r.s.lock()()
	for _, item := range r.s.data.orderItems {
		if item.TenantID == tenantID && item.OrderID == orderID && item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, apperr.NewNotFound("OrderItem", "product_id", productID)
}

func (r *orderItemRepo) Create(ctx context.Context, item *model.OrderItem) error {
	defer r.s.lock()()
	item.ID = r.s.data.nextID("order_item")
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	stored.Product = nil
	r.s.data.orderItems[item.ID] = stored
	return nil
}

func (r *orderItemRepo) Update(ctx context.Context, item *model.OrderItem) error {
	defer r.s.lock()()
	existing, ok := r.s.data.orderItems[item.ID]
	if !ok || existing.TenantID != item.TenantID {
		return apperr.NewNotFound("OrderItem", "id", item.ID)
	}
	item.UpdatedAt = time.Now()
	stored := *item
	stored.Product = nil
	r.s.data.orderItems[item.ID] = stored
	return nil
}

func (r *orderItemRepo) Delete(ctx context.Context, tenantID, id uint) error {
	defer r.s.lock()()
	if item, ok := r.s.data.orderItems[id]; !ok || item.TenantID != tenantID {
		return apperr.NewNotFound("OrderItem", "id", id)
	}
	delete(r.s.data.orderItems, id)
	return nil
}

func (r *orderItemRepo) ExistsByProductID(ctx context.Context, tenantID, productID uint) (bool, error) {
	defer r.s.lock()()
	for _, item := range r.s.data.orderItems {
		if item.TenantID == tenantID && item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}
