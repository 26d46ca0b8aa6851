package memstore

import (
	"context"
	"sort"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type userRepo struct {
	s *Store
}

func (r *userRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.User, error) {
	defer r.s.lock()()
	if user, ok := r.s.data.users[id]; ok && user.TenantID == tenantID {
		return &user, nil
	}
	return nil, apperr.NewNotFound("Customer", "id", id)
}

func (r *userRepo) List(ctx context.Context, tenantID uint, limit, offset int) ([]model.User, error) {
	defer r.s.lock()()
	var users []model.User
	for _, user := range r.s.data.users {
		if user.TenantID == tenantID {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return paginate(users, limit, offset), nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, tenantID uint, email string) (bool, error) {
	defer r.s.lock()()
	for _, user := range r.s.data.users {
		if user.TenantID == tenantID && user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	defer r.s.lock()()
	for _, existing := range r.s.data.users {
		if existing.TenantID == user.TenantID && existing.Email == user.Email {
			return apperr.NewConflict("email %q already exists in tenant %d", user.Email, user.TenantID)
		}
	}
	user.ID = r.s.data.nextID("user")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	defer r.s.lock()()
	existing, ok := r.s.data.users[user.ID]
	if !ok || existing.TenantID != user.TenantID {
		return apperr.NewNotFound("Customer", "id", user.ID)
	}
	user.UpdatedAt = time.Now()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(ctx context.Context, tenantID, id uint) error {
	defer r.s.lock()()
	if user, ok := r.s.data.users[id]; !ok || user.TenantID != tenantID {
		return apperr.NewNotFound("Customer", "id", id)
	}
	delete(r.s.data.users, id)
	return nil
}

// paginate applies limit/offset the way a SQL store would; limit <= 0 means
// no limit.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
