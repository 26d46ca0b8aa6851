package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) photosOf(tenantID, productID uint) []model.ProductPhoto {
	var photos []model.ProductPhoto
	for _, photo := range r.s.data.photos {
		if photo.TenantID == tenantID && photo.ProductID == productID {
			photos = append(photos, photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		if photos[i].DisplayOrder != photos[j].DisplayOrder {
			return photos[i].DisplayOrder < photos[j].DisplayOrder
		}
		return photos[i].ID < photos[j].ID
	})
	return photos
}

func (r *productRepo) FindByID(ctx context.Context, tenantID, id uint) (*model.Product, error) {
	defer r.s.lock()()
	product, ok := r.s.data.products[id]
	if !ok || product.TenantID != tenantID {
		return nil, apperr.NewNotFound("Product", "id", id)
	}
	product.Photos = r.photosOf(tenantID, id)
	return &product, nil
}

func (r *productRepo) Search(ctx context.Context, tenantID uint, criteria model.ProductSearchCriteria, limit, offset int) ([]model.Product, error) {
	defer r.s.lock()()
	var products []model.Product
	for _, product := range r.s.data.products {
		if product.TenantID != tenantID {
			continue
		}
		if criteria.NameLike != "" &&
			!strings.Contains(strings.ToLower(product.Name), strings.ToLower(criteria.NameLike)) {
			continue
		}
		if criteria.Category != "" && product.Category != criteria.Category {
			continue
		}
		if criteria.Active != nil && product.Active != *criteria.Active {
			continue
		}
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return paginate(products, limit, offset), nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	defer r.s.lock()()
	product.ID = r.s.data.nextID("product")
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	stored.Photos = nil
	r.s.data.products[product.ID] = stored
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	defer r.s.lock()()
	existing, ok := r.s.data.products[product.ID]
	if !ok || existing.TenantID != product.TenantID {
		return apperr.NewNotFound("Product", "id", product.ID)
	}
	product.UpdatedAt = time.Now()
	stored := *product
	stored.Photos = nil
	r.s.data.products[product.ID] = stored
	return nil
}

func (r *productRepo) Delete(ctx context.Context, tenantID, id uint) error {
	defer r.s.lock()()
	if product, ok := r.s.data.products[id]; !ok || product.TenantID != tenantID {
		return apperr.NewNotFound("Product", "id", id)
	}
	for photoID, photo := range r.s.data.photos {
		if photo.TenantID == tenantID && photo.ProductID == id {
			delete(r.s.data.photos, photoID)
		}
	}
	delete(r.s.data.products, id)
	return nil
}

func (r *productRepo) DecrementStock(ctx context.Context, tenantID, productID uint, quantity int) error {
	defer r.s.lock()()
	product, ok := r.s.data.products[productID]
	if !ok || product.TenantID != tenantID {
		return apperr.NewNotFound("Product", "id", productID)
	}
	if product.StockQuantity < quantity {
		return apperr.NewInsufficientStock(productID, quantity, product.StockQuantity)
	}
	product.StockQuantity -= quantity
	product.UpdatedAt = time.Now()
	r.s.data.products[productID] = product
	return nil
}

func (r *productRepo) RestoreStock(ctx context.Context, tenantID, productID uint, quantity int) error {
	defer r.s.lock()()
	product, ok := r.s.data.products[productID]
	if !ok || product.TenantID != tenantID {
		return apperr.NewNotFound("Product", "id", productID)
	}
	product.StockQuantity += quantity
	product.UpdatedAt = time.Now()
	r.s.data.products[productID] = product
	return nil
}

func (r *productRepo) FindPhoto(ctx context.Context, tenantID, photoID uint) (*model.ProductPhoto, error) {
	defer r.s.lock()()
	if photo, ok := r.s.data.photos[photoID]; ok && photo.TenantID == tenantID {
		return &photo, nil
	}
	return nil, apperr.NewNotFound("ProductPhoto", "id", photoID)
}

func (r *productRepo) ListPhotos(ctx context.Context, tenantID, productID uint) ([]model.ProductPhoto, error) {
	defer r.s.lock()()
	return r.photosOf(tenantID, productID), nil
}

func (r *productRepo) CreatePhoto(ctx context.Context, photo *model.ProductPhoto) error {
	defer r.s.lock()()
	photo.ID = r.s.data.nextID("photo")
	photo.CreatedAt = time.Now()
	photo.UpdatedAt = photo.CreatedAt
	r.s.data.photos[photo.ID] = *photo
	return nil
}

func (r *productRepo) UpdatePhoto(ctx context.Context, photo *model.ProductPhoto) error {
	defer r.s.lock()()
	existing, ok := r.s.data.photos[photo.ID]
	if !ok || existing.TenantID != photo.TenantID {
		return apperr.NewNotFound("ProductPhoto", "id", photo.ID)
	}
	photo.UpdatedAt = time.Now()
	r.s.data.photos[photo.ID] = *photo
	return nil
}

func (r *productRepo) DeletePhoto(ctx context.Context, tenantID, photoID uint) error {
	defer r.s.lock()()
	if photo, ok := r.s.data.photos[photoID]; !ok || photo.TenantID != tenantID {
		return apperr.NewNotFound("ProductPhoto", "id", photoID)
	}
	delete(r.s.data.photos, photoID)
	return nil
}

func (r *productRepo) ClearMainPhoto(ctx context.Context, tenantID, productID uint) error {
	defer r.s.lock()()
	for id, photo := range r.s.data.photos {
		if photo.TenantID == tenantID && photo.ProductID == productID && photo.Main {
			photo.Main = false
			r.s.data.photos[id] = photo
		}
	}
	return nil
}
