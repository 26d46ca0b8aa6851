package memstore

import (
	"context"
	"sort"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderRepo struct {
	s *Store
}

func (r *orderRepo) assemble(order model.Order) *model.Order {
	if customer, ok := r.s.data.users[order.CustomerID]; ok {
		order.Customer = &customer
	}
	if address, ok := r.s.data.addresses[order.AddressID]; ok {
		order.Address = &address
	}
	if status, ok := r.s.data.orderStatuses[order.StatusID]; ok {
		order.Status = &status
	}
	for _, item := range r.s.data.orderItems {
		if item.OrderID == order.ID {
			order.Items = append(order.Items, item)
		}
	}
	sort.Slice(order.Items, func(i, j int) bool { return order.Items[i].ID < order.Items[j].ID })
	return &order
}

func (r *orderRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Order, error) {
	defer r.s.lock()()
	order, ok := r.s.data.orders[id]
	if !ok || order.TenantID != tenantID {
		return nil, apperr.NewNotFound("Order", "id", id)
	}
	return r.assemble(order), nil
}

func (r *orderRepo) List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Order, error) {
	defer r.s.lock()()
	var orders []model.Order
	for _, order := range r.s.data.orders {
		if order.TenantID == tenantID {
			if status, ok := r.s.data.orderStatuses[order.StatusID]; ok {
				order.Status = &status
			}
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return paginate(orders, limit, offset), nil
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	defer r.s.lock()()
	order.ID = r.s.data.nextID("order")
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	items := order.Items
	for i := range items {
		items[i].ID = r.s.data.nextID("order_item")
		items[i].OrderID = order.ID
		items[i].CreatedAt = order.CreatedAt
		items[i].UpdatedAt = order.CreatedAt
		stored := items[i]
		stored.Product = nil
		r.s.data.orderItems[stored.ID] = stored
	}

	stored := *order
	stored.Customer, stored.Address, stored.Status, stored.Items = nil, nil, nil, nil
	r.s.data.orders[order.ID] = stored
	return nil
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	defer r.s.lock()()
	existing, ok := r.s.data.orders[order.ID]
	if !ok || existing.TenantID != order.TenantID {
		return apperr.NewNotFound("Order", "id", order.ID)
	}
	order.UpdatedAt = time.Now()
	stored := *order
	stored.Customer, stored.Address, stored.Status, stored.Items = nil, nil, nil, nil
	r.s.data.orders[order.ID] = stored
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, tenantID, id uint) error {
	defer r.s.lock()()
	if order, ok := r.s.data.orders[id]; !ok || order.TenantID != tenantID {
		return apperr.NewNotFound("Order", "id", id)
	}
	for itemID, item := range r.s.data.orderItems {
		if item.OrderID == id {
			delete(r.s.data.orderItems, itemID)
		}
	}
	delete(r.s.data.orders, id)
	return nil
}

func (r *orderRepo) ExistsByID(ctx context.Context, tenantID, id uint) (bool, error) {
	defer r.s.lock()()
	order, ok := r.s.data.orders[id]
	return ok && order.TenantID == tenantID, nil
}

func (r *orderRepo) ExistsByCustomerID(ctx context.Context, tenantID, customerID uint) (bool, error) {
	defer r.s.lock()()
	for _, order := range r.s.data.orders {
		if order.TenantID == tenantID && order.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderRepo) ExistsByStatusID(ctx context.Context, statusID uint) (bool, error) {
	defer r.s.lock()()
	for _, order := range r.s.data.orders {
		if order.StatusID == statusID {
			return true, nil
		}
	}
	return false, nil
}
