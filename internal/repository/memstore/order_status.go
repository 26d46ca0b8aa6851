package memstore

import (
	"context"
	"sort"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderStatusRepo struct {
	s *Store
}

func (r *orderStatusRepo) FindByID(ctx context.Context, id uint) (*model.OrderStatus, error) {
	defer r.s.lock()()
	if status, ok := r.s.data.orderStatuses[id]; ok {
		return &status, nil
	}
	return nil, apperr.NewNotFound("OrderStatus", "id", id)
}

func (r *orderStatusRepo) FindByName(ctx context.Context, name string) (*model.OrderStatus, error) {
	defer r.s.lock()()
	for _, status := range r.s.data.orderStatuses {
		if status.StatusName == name {
			return &status, nil
		}
	}
	return nil, apperr.NewNotFound("OrderStatus", "name", name)
}

func (r *orderStatusRepo) List(ctx context.Context) ([]model.OrderStatus, error) {
	defer r.s.lock()()
	var statuses []model.OrderStatus
	for _, status := range r.s.data.orderStatuses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses, nil
}

func (r *orderStatusRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	defer r.s.lock()()
	for _, status := range r.s.data.orderStatuses {
		if status.StatusName == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderStatusRepo) ExistsByNameExcluding(ctx context.Context, name string, excludeID uint) (bool, error) {
	defer r.s.lock()()
	for _, status := range r.s.data.orderStatuses {
		if status.StatusName == name && status.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderStatusRepo) Create(ctx context.Context, status *model.OrderStatus) error {
	defer r.s.lock()()
	for _, existing := range r.s.data.orderStatuses {
		if existing.StatusName == status.StatusName {
			return apperr.NewConflict("order status %q already exists", status.StatusName)
		}
	}
	status.ID = r.s.data.nextID("order_status")
	r.s.data.orderStatuses[status.ID] = *status
	return nil
}

func (r *orderStatusRepo) Update(ctx context.Context, status *model.OrderStatus) error {
	defer r.s.lock()()
	if _, ok := r.s.data.orderStatuses[status.ID]; !ok {
		return apperr.NewNotFound("OrderStatus", "id", status.ID)
	}
	r.s.data.orderStatuses[status.ID] = *status
	return nil
}

func (r *orderStatusRepo) Delete(ctx context.Context, id uint) error {
	defer r.s.lock()()
	if _, ok := r.s.data.orderStatuses[id]; !ok {
		return apperr.NewNotFound("OrderStatus", "id", id)
	}
	delete(r.s.data.orderStatuses, id)
	return nil
}
