package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type tenantRepo struct {
	db *gorm.DB
}

func (r *tenantRepo) FindByID(ctx context.Context, id uint) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Tenant", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) FindBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Tenant", "subdomain", subdomain)
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tenant{}).Where("tenant_id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *tenantRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tenant{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *tenantRepo) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Tenant{}).Where("subdomain = ?", subdomain).Count(&count).Error
	return count > 0, err
}

func (r *tenantRepo) Create(ctx context.Context, tenant *model.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepo) Update(ctx context.Context, tenant *model.Tenant) error {
	return r.db.WithContext(ctx).Save(tenant).Error
}
