package memstore

import (
	"context"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type tenantUserRepo struct {
	s *Store
}

func (r *tenantUserRepo) withTenant(user model.TenantUser) *model.TenantUser {
	if tenant, ok := r.s.data.tenants[user.TenantID]; ok {
		user.Tenant = &tenant
	}
	return &user
}

func (r *tenantUserRepo) FindByTenantAndUsername(ctx context.Context, tenantID uint, username string) (*model.TenantUser, error) {
	defer r.s.lock()()
	for _, user := range r.s.data.tenantUsers {
		if user.TenantID == tenantID && user.Username == username {
			return r.withTenant(user), nil
		}
	}
	return nil, apperr.NewNotFound("TenantUser", "username", username)
}

func (r *tenantUserRepo) FindByUsername(ctx context.Context, username string) (*model.TenantUser, error) {
	defer r.s.lock()()
	for _, user := range r.s.data.tenantUsers {
		if user.Username == username {
			return r.withTenant(user), nil
		}
	}
	return nil, apperr.NewNotFound("TenantUser", "username", username)
}

func (r *tenantUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	defer r.s.lock()()
	for _, user := range r.s.data.tenantUsers {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *tenantUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	defer r.s.lock()()
	for _, user := range r.s.data.tenantUsers {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *tenantUserRepo) Create(ctx context.Context, user *model.TenantUser) error {
	defer r.s.lock()()
	for _, existing := range r.s.data.tenantUsers {
		if existing.TenantID == user.TenantID && existing.Username == user.Username {
			return apperr.NewConflict("username %q already exists in tenant %d", user.Username, user.TenantID)
		}
	}
	user.ID = r.s.data.nextID("tenant_user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	stored.Tenant = nil
	r.s.data.tenantUsers[user.ID] = stored
	return nil
}

func (r *tenantUserRepo) Update(ctx context.Context, user *model.TenantUser) error {
	defer r.s.lock()()
	if _, ok := r.s.data.tenantUsers[user.ID]; !ok {
		return apperr.NewNotFound("TenantUser", "id", user.ID)
	}
	user.UpdatedAt = time.Now()
	stored := *user
	stored.Tenant = nil
	r.s.data.tenantUsers[user.ID] = stored
	return nil
}
