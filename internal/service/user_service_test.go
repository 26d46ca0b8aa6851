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

func newUserFixture(t *testing.T) (*UserService, *memstore.Store, context.Context, uint) {
	t.Helper()

	store := memstore.New()
	tenant := &model.Tenant{Name: "Shop One", Subdomain: "shop1", Active: true}
	require.NoError(t, store.Tenants().Create(context.Background(), tenant))
	ctx := multitenancy.WithTenant(context.Background(), tenant.ID)
	return NewUserService(store), store, ctx, tenant.ID
}

func TestCreateCustomerEmailUniquePerTenant(t *testing.T) {
	users, store, ctx, tenantID := newUserFixture(t)

	_, err := users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "Ivan@Example.com", Active: true})
	require.NoError(t, err)

	// Same email again in the same tenant, case differences normalized away.
	_, err = users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "ivan@example.com", Active: true})
	assert.True(t, apperr.IsConflict(err))

	// The same email in another tenant is fine.
	other := &model.Tenant{Name: "Shop Two", Subdomain: "shop2", Active: true}
	require.NoError(t, store.Tenants().Create(context.Background(), other))
	otherCtx := multitenancy.WithTenant(context.Background(), other.ID)
	_, err = users.CreateCustomer(otherCtx, &model.User{TenantID: other.ID, Email: "ivan@example.com", Active: true})
	assert.NoError(t, err)
}

func TestUpdateCustomerChecksChangedEmail(t *testing.T) {
	users, _, ctx, tenantID := newUserFixture(t)

	first, err := users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "a@example.com", Active: true})
	require.NoError(t, err)
	second, err := users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "b@example.com", Active: true})
	require.NoError(t, err)

	// Keeping the own email is not a conflict.
	first.FirstName = "Anna"
	_, err = users.UpdateCustomer(ctx, first)
	require.NoError(t, err)

	second.Email = "a@example.com"
	_, err = users.UpdateCustomer(ctx, second)
	assert.True(t, apperr.IsConflict(err))
}

func TestDeleteCustomerReferencedByOrderDeactivates(t *testing.T) {
	users, store, ctx, tenantID := newUserFixture(t)

	customer, err := users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "c@example.com", Active: true})
	require.NoError(t, err)

	status := &model.OrderStatus{StatusName: model.StatusCreated}
	require.NoError(t, store.OrderStatuses().Create(context.Background(), status))
	address := &model.Address{TenantID: tenantID, City: "Moscow", Street: "Tverskaya", House: "1"}
	require.NoError(t, store.Addresses().Create(context.Background(), address))
	product := &model.Product{TenantID: tenantID, Name: "Teapot", Price: decimal.NewFromInt(100), StockQuantity: 5, Active: true}
	require.NoError(t, store.Products().Create(context.Background(), product))

	orders := NewOrderService(store, marketplace.NopNotifier{})
	_, err = orders.CreateOrder(ctx, tenantID, customer.ID, address.ID,
		[]OrderLineInput{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, users.DeleteCustomer(ctx, tenantID, customer.ID))

	kept, err := users.GetCustomer(ctx, tenantID, customer.ID)
	require.NoError(t, err)
	assert.False(t, kept.Active)
}

func TestDeleteCustomerWithoutOrdersRemoves(t *testing.T) {
	users, _, ctx, tenantID := newUserFixture(t)

	customer, err := users.CreateCustomer(ctx, &model.User{TenantID: tenantID, Email: "c@example.com", Active: true})
	require.NoError(t, err)

	require.NoError(t, users.DeleteCustomer(ctx, tenantID, customer.ID))
	_, err = users.GetCustomer(ctx, tenantID, customer.ID)
	assert.True(t, apperr.IsNotFound(err))
}
