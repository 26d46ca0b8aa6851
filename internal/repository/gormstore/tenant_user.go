package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type tenantUserRepo struct {
	db *gorm.DB
}

func (r *tenantUserRepo) FindByTenantAndUsername(ctx context.Context, tenantID uint, username string) (*model.TenantUser, error) {
	var user model.TenantUser
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("tenant_id = ? AND username_in_tenant = ?", tenantID, username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("TenantUser", "username", username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *tenantUserRepo) FindByUsername(ctx context.Context, username string) (*model.TenantUser, error) {
	var user model.TenantUser
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("username_in_tenant = ?", username).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("TenantUser", "username", username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *tenantUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TenantUser{}).
		Where("username_in_tenant = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *tenantUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TenantUser{}).
		Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *tenantUserRepo) Create(ctx context.Context, user *model.TenantUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *tenantUserRepo) Update(ctx context.Context, user *model.TenantUser) error {
	return r.db.WithContext(ctx).Omit("Tenant").Save(user).Error
}
