package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderStatusRepo struct {
	db *gorm.DB
}

func (r *orderStatusRepo) FindByID(ctx context.Context, id uint) (*model.OrderStatus, error) {
	var status model.OrderStatus
	err := r.db.WithContext(ctx).First(&status, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("OrderStatus", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *orderStatusRepo) FindByName(ctx context.Context, name string) (*model.OrderStatus, error) {
	var status model.OrderStatus
	err := r.db.WithContext(ctx).Where("status_name = ?", name).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("OrderStatus", "name", name)
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *orderStatusRepo) List(ctx context.Context) ([]model.OrderStatus, error) {
	var statuses []model.OrderStatus
	err := r.db.WithContext(ctx).Order("status_id").Find(&statuses).Error
	return statuses, err
}

func (r *orderStatusRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderStatus{}).
		Where("status_name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *orderStatusRepo) ExistsByNameExcluding(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderStatus{}).
		Where("status_name = ? AND status_id <> ?", name, excludeID).Count(&count).Error
	return count > 0, err
}

func (r *orderStatusRepo) Create(ctx context.Context, status *model.OrderStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *orderStatusRepo) Update(ctx context.Context, status *model.OrderStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *orderStatusRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderStatus{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("OrderStatus", "id", id)
	}
	return nil
}
