package memstore

import (
	"context"
	"strings"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type tenantRepo struct {
	s *Store
}

func (r *tenantRepo) FindByID(ctx context.Context, id uint) (*model.Tenant, error) {
	defer r.s.lock()()
	if tenant, ok := r.s.data.tenants[id]; ok {
		return &tenant, nil
	}
	return nil, apperr.NewNotFound("Tenant", "id", id)
}

func (r *tenantRepo) FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	defer r.s.lock()()
	for _, tenant := range r.s.data.tenants {
		if tenant.Subdomain == subdomain {
			return &tenant, nil
		}
	}
	return nil, apperr.NewNotFound("Tenant", "subdomain", subdomain)
}

func (r *tenantRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	defer r.s.lock()()
	_, ok := r.s.data.tenants[id]
	return ok, nil
}

func (r *tenantRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	defer r.s.lock()()
	for _, tenant := range r.s.data.tenants {
		if tenant.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *tenantRepo) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	defer r.s.lock()()
	for _, tenant := range r.s.data.tenants {
		if tenant.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *model.Tenant) error {
	defer r.s.lock()()
	for _, existing := range r.s.data.tenants {
		if existing.Name == tenant.Name {
			return apperr.NewConflict("tenant name %q already exists", tenant.Name)
		}
		if tenant.Subdomain != "" && strings.EqualFold(existing.Subdomain, tenant.Subdomain) {
			return apperr.NewConflict("subdomain %q already exists", tenant.Subdomain)
		}
	}
	tenant.ID = r.s.data.nextID("tenant")
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = tenant.CreatedAt
	r.s.data.tenants[tenant.ID] = *tenant
	return nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *model.Tenant) error {
	defer r.s.lock()()
	if _, ok := r.s.data.tenants[tenant.ID]; !ok {
		return apperr.NewNotFound("Tenant", "id", tenant.ID)
	}
	tenant.UpdatedAt = time.Now()
	r.s.data.tenants[tenant.ID] = *tenant
	return nil
}
