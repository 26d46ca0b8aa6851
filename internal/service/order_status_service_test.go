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

func TestStatusNamesGloballyUnique(t *testing.T) {
	store := memstore.New()
	statuses := NewOrderStatusService(store)
	ctx := context.Background()

	created, err := statuses.CreateStatus(ctx, "Created")
	require.NoError(t, err)

	_, err = statuses.CreateStatus(ctx, "Created")
	assert.True(t, apperr.IsConflict(err))

	other, err := statuses.CreateStatus(ctx, "Packed")
	require.NoError(t, err)

	// Renaming onto a taken name is refused, renaming to itself is not.
	_, err = statuses.UpdateStatus(ctx, other.ID, "Created")
	assert.True(t, apperr.IsConflict(err))
	_, err = statuses.UpdateStatus(ctx, other.ID, "Packed")
	assert.NoError(t, err)
	_, err = statuses.UpdateStatus(ctx, created.ID, "Created")
	assert.NoError(t, err)
}

func TestDeleteStatusInUseAcrossTenants(t *testing.T) {
	store := memstore.New()
	statuses := NewOrderStatusService(store)
	bg := context.Background()

	created, err := statuses.CreateStatus(bg, model.StatusCreated)
	require.NoError(t, err)

	tenant := &model.Tenant{Name: "Shop One", Subdomain: "shop1", Active: true}
	require.NoError(t, store.Tenants().Create(bg, tenant))
	customer := &model.User{TenantID: tenant.ID, Email: "c@example.com", Active: true}
	require.NoError(t, store.Users().Create(bg, customer))
	address := &model.Address{TenantID: tenant.ID, City: "Moscow", Street: "Tverskaya", House: "1"}
	require.NoError(t, store.Addresses().Create(bg, address))
	product := &model.Product{TenantID: tenant.ID, Name: "Teapot", Price: decimal.NewFromInt(100), StockQuantity: 5, Active: true}
	require.NoError(t, store.Products().Create(bg, product))

	ctx := multitenancy.WithTenant(bg, tenant.ID)
	orders := NewOrderService(store, marketplace.NopNotifier{})
	order, err := orders.CreateOrder(ctx, tenant.ID, customer.ID, address.ID,
		[]OrderLineInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	err = statuses.DeleteStatus(bg, created.ID)
	require.Error(t, err)
	var integrity *apperr.IntegrityError
	assert.ErrorAs(t, err, &integrity)

	// After the referencing order is gone, deletion succeeds.
	canceled, err := statuses.CreateStatus(bg, model.StatusCanceled)
	require.NoError(t, err)
	_, err = orders.UpdateOrderStatus(ctx, tenant.ID, order.ID, canceled.ID, "")
	require.NoError(t, err)
	require.NoError(t, orders.DeleteOrder(ctx, tenant.ID, order.ID))
	assert.NoError(t, statuses.DeleteStatus(bg, created.ID))
}

func TestCreateStatusValidation(t *testing.T) {
	statuses := NewOrderStatusService(memstore.New())

	_, err := statuses.CreateStatus(context.Background(), "   ")
	assert.True(t, apperr.IsInvalidRequest(err))
}
