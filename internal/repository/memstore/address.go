package memstore

import (
	"context"
	"sort"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type addressRepo struct {
	s *Store
}

func (r *addressRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Address, error) {
	defer r.s.lock()()
	if address, ok := r.s.data.addresses[id]; ok && address.TenantID == tenantID {
		return &address, nil
	}
	return nil, apperr.NewNotFound("Address", "id", id)
}

func (r *addressRepo) List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Address, error) {
	defer r.s.lock()()
	var addresses []model.Address
	for _, address := range r.s.data.addresses {
		if address.TenantID == tenantID {
			addresses = append(addresses, address)
		}
	}
	sort.Slice(addresses, func(i, j int) bool { return addresses[i].ID < addresses[j].ID })
	return paginate(addresses, limit, offset), nil
}

func (r *addressRepo) Create(ctx context.Context, address *model.Address) error {
	defer r.s.lock()()
	address.ID = r.s.data.nextID("address")
	address.CreatedAt = time.Now()
	address.UpdatedAt = address.CreatedAt
	r.s.data.addresses[address.ID] = *address
	return nil
}

func (r *addressRepo) Update(ctx context.Context, address *model.Address) error {
	defer r.s.lock()()
	existing, ok := r.s.data.addresses[address.ID]
	if !ok || existing.TenantID != address.TenantID {
		return apperr.NewNotFound("Address", "id", address.ID)
	}
	address.UpdatedAt = time.Now()
	r.s.data.addresses[address.ID] = *address
	return nil
}

func (r *addressRepo) Delete(ctx context.Context, tenantID, id uint) error {
	defer r.s.lock()()
	if address, ok := r.s.data.addresses[id]; !ok || address.TenantID != tenantID {
		return apperr.NewNotFound("Address", "id", id)
	}
	delete(r.s.data.addresses, id)
	return nil
}
