package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Customer").
		Preload("Address").
		Preload("Items").
		Where("tenant_id = ? AND order_id = ?", tenantID, id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Order", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, tenantID uint, limit, offset int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Status").
		Where("tenant_id = ?", tenantID).
		Order("order_id DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	// Items travel with the order: gorm persists the association in the
	// same statement batch, inside the surrounding transaction.
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).
		Omit("Items", "Status", "Customer", "Address").
		Save(order).Error
}

func (r *orderRepo) Delete(ctx context.Context, tenantID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND order_id = ?", tenantID, id).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("tenant_id = ? AND order_id = ?", tenantID, id).
			Delete(&model.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound("Order", "id", id)
		}
		return nil
	})
}

func (r *orderRepo) ExistsByID(ctx context.Context, tenantID, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("tenant_id = ? AND order_id = ?", tenantID, id).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) ExistsByCustomerID(ctx context.Context, tenantID, customerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) ExistsByStatusID(ctx context.Context, statusID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status_id = ?", statusID).Count(&count).Error
	return count > 0, err
}
