package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopbase/internal/apperr"
	"shopbase/internal/marketplace"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository"
	"shopbase/pkg/logger"
)

// ProductService manages the tenant catalog: product records, their photo
// galleries and direct stock adjustments. Price and stock changes are
// signalled to the marketplace sync sink.
type ProductService struct {
	store    repository.Store
	notifier marketplace.Notifier
}

// NewProductService creates a new ProductService
func NewProductService(store repository.Store, notifier marketplace.Notifier) *ProductService {
	return &ProductService{store: store, notifier: notifier}
}

// GetProduct returns one product with its photos.
func (s *ProductService) GetProduct(ctx context.Context, tenantID, productID uint) (*model.Product, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Products().FindByID(ctx, tenantID, productID)
}

// SearchProducts returns a page of products matching the criteria.
func (s *ProductService) SearchProducts(ctx context.Context, tenantID uint, criteria model.ProductSearchCriteria, limit, offset int) ([]model.Product, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	return s.store.Products().Search(ctx, tenantID, criteria, limit, offset)
}

// CreateProduct validates and persists a new catalog record. Price must be
// strictly positive; stock may start at zero.
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, product.TenantID); err != nil {
		return nil, err
	}
	if product.Name == "" {
		return nil, apperr.NewInvalidRequest("product name is required")
	}
	if !product.Price.GreaterThan(decimal.Zero) {
		return nil, apperr.NewInvalidRequest("product price must be greater than zero")
	}
	if product.StockQuantity < 0 {
		return nil, apperr.NewInvalidRequest("stock quantity cannot be negative")
	}

	if err := s.store.Products().Create(ctx, product); err != nil {
		return nil, err
	}

	s.notifier.NotifyProductChanged(product.TenantID, product.ID)
	log.Info("Product created",
		zap.Uint("tenant_id", product.TenantID),
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct overwrites the descriptive fields, price, stock and active
// flag of an existing product. Stock adjustments through this path are
// administrative corrections; order flows use the conditional decrement.
func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, product.TenantID); err != nil {
		return nil, err
	}
	if product.Name == "" {
		return nil, apperr.NewInvalidRequest("product name is required")
	}
	if !product.Price.GreaterThan(decimal.Zero) {
		return nil, apperr.NewInvalidRequest("product price must be greater than zero")
	}
	if product.StockQuantity < 0 {
		return nil, apperr.NewInvalidRequest("stock quantity cannot be negative")
	}

	existing, err := s.store.Products().FindByID(ctx, product.TenantID, product.ID)
	if err != nil {
		return nil, err
	}

	changed := !existing.Price.Equal(product.Price) || existing.StockQuantity != product.StockQuantity
	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, err
	}

	if changed {
		s.notifier.NotifyProductChanged(product.TenantID, product.ID)
	}
	log.Info("Product updated",
		zap.Uint("tenant_id", product.TenantID),
		zap.Uint("product_id", product.ID))
	return s.store.Products().FindByID(ctx, product.TenantID, product.ID)
}

// DeleteProduct removes a product and its photos. Refused while any order
// line still references the product; deactivate it instead.
func (s *ProductService) DeleteProduct(ctx context.Context, tenantID, productID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().FindByID(ctx, tenantID, productID); err != nil {
			return err
		}
		referenced, err := tx.OrderItems().ExistsByProductID(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if referenced {
			return apperr.NewIntegrity("product %d is referenced by order items and cannot be deleted", productID)
		}
		return tx.Products().Delete(ctx, tenantID, productID)
	})
	if err != nil {
		return err
	}

	log.Info("Product deleted", zap.Uint("tenant_id", tenantID), zap.Uint("product_id", productID))
	return nil
}

// ListPhotos returns the ordered gallery of a product.
func (s *ProductService) ListPhotos(ctx context.Context, tenantID, productID uint) ([]model.ProductPhoto, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if _, err := s.store.Products().FindByID(ctx, tenantID, productID); err != nil {
		return nil, err
	}
	return s.store.Products().ListPhotos(ctx, tenantID, productID)
}

// AddPhoto appends a gallery entry. The first photo of a product always
// becomes the main one; a later photo flagged main displaces the current one.
func (s *ProductService) AddPhoto(ctx context.Context, photo *model.ProductPhoto) (*model.ProductPhoto, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, photo.TenantID); err != nil {
		return nil, err
	}
	if photo.FilePath == "" {
		return nil, apperr.NewInvalidRequest("photo file path is required")
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Products().FindByID(ctx, photo.TenantID, photo.ProductID); err != nil {
			return err
		}
		existing, err := tx.Products().ListPhotos(ctx, photo.TenantID, photo.ProductID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			photo.Main = true
		} else if photo.Main {
			if err := tx.Products().ClearMainPhoto(ctx, photo.TenantID, photo.ProductID); err != nil {
				return err
			}
		}
		return tx.Products().CreatePhoto(ctx, photo)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Product photo added",
		zap.Uint("tenant_id", photo.TenantID),
		zap.Uint("product_id", photo.ProductID),
		zap.Uint("photo_id", photo.ID),
		zap.Bool("main", photo.Main))
	return photo, nil
}

// SetMainPhoto makes the given photo the single main one of its product.
func (s *ProductService) SetMainPhoto(ctx context.Context, tenantID, photoID uint) (*model.ProductPhoto, error) {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}

	var photo *model.ProductPhoto
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		photo, err = tx.Products().FindPhoto(ctx, tenantID, photoID)
		if err != nil {
			return err
		}
		if err := tx.Products().ClearMainPhoto(ctx, tenantID, photo.ProductID); err != nil {
			return err
		}
		photo.Main = true
		return tx.Products().UpdatePhoto(ctx, photo)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Product main photo set",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("photo_id", photoID))
	return photo, nil
}

// UpdatePhoto changes the file path and display order of a gallery entry.
// The main flag is managed through SetMainPhoto only.
func (s *ProductService) UpdatePhoto(ctx context.Context, tenantID, photoID uint, filePath string, displayOrder int) (*model.ProductPhoto, error) {
	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return nil, err
	}
	if filePath == "" {
		return nil, apperr.NewInvalidRequest("photo file path is required")
	}

	photo, err := s.store.Products().FindPhoto(ctx, tenantID, photoID)
	if err != nil {
		return nil, err
	}
	photo.FilePath = filePath
	photo.DisplayOrder = displayOrder
	if err := s.store.Products().UpdatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePhoto removes a gallery entry. When the main photo is removed and
// others remain, the first remaining one becomes main so the gallery keeps
// exactly one main photo.
func (s *ProductService) DeletePhoto(ctx context.Context, tenantID, photoID uint) error {
	log := logger.FromContext(ctx)

	if err := multitenancy.Require(ctx, tenantID); err != nil {
		return err
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		photo, err := tx.Products().FindPhoto(ctx, tenantID, photoID)
		if err != nil {
			return err
		}
		if err := tx.Products().DeletePhoto(ctx, tenantID, photoID); err != nil {
			return err
		}
		if !photo.Main {
			return nil
		}
		remaining, err := tx.Products().ListPhotos(ctx, tenantID, photo.ProductID)
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return nil
		}
		next := remaining[0]
		next.Main = true
		return tx.Products().UpdatePhoto(ctx, &next)
	})
	if err != nil {
		return err
	}

	log.Info("Product photo deleted", zap.Uint("tenant_id", tenantID), zap.Uint("photo_id", photoID))
	return nil
}
