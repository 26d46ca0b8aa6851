package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type orderItemRepo struct {
	db *gorm.DB
}

func (r *orderItemRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("tenant_id = ? AND order_item_id = ?", tenantID, id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("OrderItem", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, tenantID, orderID uint) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Order("order_item_id").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepo) FindByOrderAndProduct(ctx context.Context, tenantID, orderID, productID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ? AND product_id = ?", tenantID, orderID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("OrderItem", "product_id", productID)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepo) Create(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepo) Update(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Omit("Product").Save(item).Error
}

func (r *orderItemRepo) Delete(ctx context.Context, tenantID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_item_id = ?", tenantID, id).
		Delete(&model.OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("OrderItem", "id", id)
	}
	return nil
}

func (r *orderItemRepo) ExistsByProductID(ctx context.Context, tenantID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).Count(&count).Error
	return count > 0, err
}
