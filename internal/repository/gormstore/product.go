package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type productRepo struct {
	db *gorm.DB
}

func (r *productRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("display_order") }).
		Where("tenant_id = ? AND product_id = ?", tenantID, id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("Product", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Search(ctx context.Context, tenantID uint, criteria model.ProductSearchCriteria, limit, offset int) ([]model.Product, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)

	if criteria.NameLike != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(criteria.NameLike)+"%")
	}
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Active != nil {
		query = query.Where("is_active = ?", *criteria.Active)
	}

	var products []model.Product
	err := query.Order("product_id").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit("Photos").Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND product_id = ?", tenantID, id).
			Delete(&model.ProductPhoto{}).Error; err != nil {
			return err
		}
		res := tx.Where("tenant_id = ? AND product_id = ?", tenantID, id).
			Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound("Product", "id", id)
		}
		return nil
	})
}

// DecrementStock is the single atomic conditional update guarding against
// concurrent check-then-act races: the WHERE clause re-checks availability at
// write time and zero affected rows means the stock moved under us.
func (r *productRepo) DecrementStock(ctx context.Context, tenantID, productID uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("tenant_id = ? AND product_id = ? AND stock_quantity >= ?", tenantID, productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		product, err := r.FindByID(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		return apperr.NewInsufficientStock(productID, quantity, product.StockQuantity)
	}
	return nil
}

func (r *productRepo) RestoreStock(ctx context.Context, tenantID, productID uint, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("Product", "id", productID)
	}
	return nil
}

func (r *productRepo) FindPhoto(ctx context.Context, tenantID, photoID uint) (*model.ProductPhoto, error) {
	var photo model.ProductPhoto
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND photo_id = ?", tenantID, photoID).
		First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NewNotFound("ProductPhoto", "id", photoID)
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *productRepo) ListPhotos(ctx context.Context, tenantID, productID uint) ([]model.ProductPhoto, error) {
	var photos []model.ProductPhoto
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Order("display_order").
		Find(&photos).Error
	return photos, err
}

func (r *productRepo) CreatePhoto(ctx context.Context, photo *model.ProductPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *productRepo) UpdatePhoto(ctx context.Context, photo *model.ProductPhoto) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

func (r *productRepo) DeletePhoto(ctx context.Context, tenantID, photoID uint) error {
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND photo_id = ?", tenantID, photoID).
		Delete(&model.ProductPhoto{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("ProductPhoto", "id", photoID)
	}
	return nil
}

func (r *productRepo) ClearMainPhoto(ctx context.Context, tenantID, productID uint) error {
	return r.db.WithContext(ctx).Model(&model.ProductPhoto{}).
		Where("tenant_id = ? AND product_id = ? AND is_main", tenantID, productID).
		UpdateColumn("is_main", false).Error
}
