package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/apperr"
	"shopbase/internal/marketplace"
	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository/memstore"
)

type productFixture struct {
	store    *memstore.Store
	products *ProductService
	ctx      context.Context
	tenantID uint
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	store := memstore.New()
	tenant := &model.Tenant{Name: "Shop One", Subdomain: "shop1", Active: true}
	require.NoError(t, store.Tenants().Create(context.Background(), tenant))

	return &productFixture{
		store:    store,
		products: NewProductService(store, marketplace.NopNotifier{}),
		ctx:      multitenancy.WithTenant(context.Background(), tenant.ID),
		tenantID: tenant.ID,
	}
}

func (f *productFixture) newProduct(t *testing.T, name string, price int64, stock int) *model.Product {
	t.Helper()
	product, err := f.products.CreateProduct(f.ctx, &model.Product{
		TenantID:      f.tenantID,
		Name:          name,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
		Active:        true,
	})
	require.NoError(t, err)
	return product
}

func TestCreateProductValidation(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.products.CreateProduct(f.ctx, &model.Product{TenantID: f.tenantID, Price: decimal.NewFromInt(10)})
	assert.True(t, apperr.IsInvalidRequest(err), "missing name")

	_, err = f.products.CreateProduct(f.ctx, &model.Product{TenantID: f.tenantID, Name: "Free", Price: decimal.Zero})
	assert.True(t, apperr.IsInvalidRequest(err), "zero price")

	_, err = f.products.CreateProduct(f.ctx, &model.Product{
		TenantID: f.tenantID, Name: "Neg", Price: decimal.NewFromInt(10), StockQuantity: -1,
	})
	assert.True(t, apperr.IsInvalidRequest(err), "negative stock")
}

func TestSearchProducts(t *testing.T) {
	f := newProductFixture(t)
	f.newProduct(t, "Green Teapot", 100, 5)
	f.newProduct(t, "Red Teapot", 120, 5)
	cup := f.newProduct(t, "Cup", 30, 5)
	cup.Category = "tableware"
	_, err := f.products.UpdateProduct(f.ctx, cup)
	require.NoError(t, err)

	found, err := f.products.SearchProducts(f.ctx, f.tenantID,
		model.ProductSearchCriteria{NameLike: "teapot"}, 100, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = f.products.SearchProducts(f.ctx, f.tenantID,
		model.ProductSearchCriteria{Category: "tableware"}, 100, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Cup", found[0].Name)
}

func TestDeleteProductBlockedByOrderItems(t *testing.T) {
	f := newProductFixture(t)
	product := f.newProduct(t, "Teapot", 100, 5)

	status := &model.OrderStatus{StatusName: model.StatusCreated}
	require.NoError(t, f.store.OrderStatuses().Create(context.Background(), status))
	customer := &model.User{TenantID: f.tenantID, Email: "c@example.com", Active: true}
	require.NoError(t, f.store.Users().Create(context.Background(), customer))
	address := &model.Address{TenantID: f.tenantID, City: "Moscow", Street: "Tverskaya", House: "1"}
	require.NoError(t, f.store.Addresses().Create(context.Background(), address))

	orders := NewOrderService(f.store, marketplace.NopNotifier{})
	_, err := orders.CreateOrder(f.ctx, f.tenantID, customer.ID, address.ID,
		[]OrderLineInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	err = f.products.DeleteProduct(f.ctx, f.tenantID, product.ID)
	require.Error(t, err)
	var integrity *apperr.IntegrityError
	assert.ErrorAs(t, err, &integrity)

	// Without references deletion goes through.
	lonely := f.newProduct(t, "Lonely", 10, 0)
	require.NoError(t, f.products.DeleteProduct(f.ctx, f.tenantID, lonely.ID))
	_, err = f.products.GetProduct(f.ctx, f.tenantID, lonely.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFirstPhotoBecomesMain(t *testing.T) {
	f := newProductFixture(t)
	product := f.newProduct(t, "Teapot", 100, 5)

	first, err := f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/1.jpg",
	})
	require.NoError(t, err)
	assert.True(t, first.Main)

	second, err := f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/2.jpg", DisplayOrder: 1,
	})
	require.NoError(t, err)
	assert.False(t, second.Main)
}

func TestSetMainPhotoKeepsSingleMain(t *testing.T) {
	f := newProductFixture(t)
	product := f.newProduct(t, "Teapot", 100, 5)

	_, err := f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/1.jpg",
	})
	require.NoError(t, err)
	second, err := f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/2.jpg", DisplayOrder: 1,
	})
	require.NoError(t, err)

	_, err = f.products.SetMainPhoto(f.ctx, f.tenantID, second.ID)
	require.NoError(t, err)

	photos, err := f.products.ListPhotos(f.ctx, f.tenantID, product.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)

	mains := 0
	for _, p := range photos {
		if p.Main {
			mains++
			assert.Equal(t, second.ID, p.ID)
		}
	}
	assert.Equal(t, 1, mains)
}

func TestDeleteMainPhotoPromotesNext(t *testing.T) {
	f := newProductFixture(t)
	product := f.newProduct(t, "Teapot", 100, 5)

	first, err := f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/1.jpg",
	})
	require.NoError(t, err)
	_, err = f.products.AddPhoto(f.ctx, &model.ProductPhoto{
		TenantID: f.tenantID, ProductID: product.ID, FilePath: "/img/2.jpg", DisplayOrder: 1,
	})
	require.NoError(t, err)

	require.NoError(t, f.products.DeletePhoto(f.ctx, f.tenantID, first.ID))

	photos, err := f.products.ListPhotos(f.ctx, f.tenantID, product.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.True(t, photos[0].Main)
}
