package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type addressRepo struct {
	db *gorm.DB
}

func (r *addressRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND address_id = ?", tenantID, id).
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Address", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepo) List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("address_id").
		Limit(limit).Offset(offset).
		Find(&addresses).Error
	return addresses, err
}

func (r *addressRepo) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepo) Update(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *addressRepo) Delete(ctx context.Context, tenantID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND address_id = ?", tenantID, id).
		Delete(&model.Address{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("Address", "id", id)
	}
	return nil
}
