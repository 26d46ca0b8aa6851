package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
)

func (f *orderFixture) orderTotal(t *testing.T, orderID uint) decimal.Decimal {
	t.Helper()
	order, err := f.store.Orders().FindByID(f.ctx, f.tenantID, orderID)
	require.NoError(t, err)
	return order.TotalAmount
}

func TestAddItemRecomputesTotal(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{{ProductID: f.productID, Quantity: 1}})
	require.NoError(t, err)

	second := &model.Product{
		TenantID:      f.tenantID,
		Name:          "Cup",
		Price:         decimal.NewFromInt(30),
		StockQuantity: 10,
		Active:        true,
	}
	require.NoError(t, f.store.Products().Create(f.ctx, second))

	item, err := f.items.AddItem(f.ctx, f.tenantID, order.ID, second.ID, 4)
	require.NoError(t, err)
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(120)))

	updated, err := f.store.Products().FindByID(f.ctx, f.tenantID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.StockQuantity)

	// 1 x 100 + 4 x 30
	assert.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(220)))
}

func TestAddItemRejectsDuplicateProduct(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{{ProductID: f.productID, Quantity: 1}})
	require.NoError(t, err)

	_, err = f.items.AddItem(f.ctx, f.tenantID, order.ID, f.productID, 1)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, 4, f.stock(t))
}

func TestUpdateItemIncreaseNeedsStock(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{{ProductID: f.productID, Quantity: 3}})
	require.NoError(t, err)
	itemID := order.Items[0].ID
	require.Equal(t, 2, f.stock(t))

	// 3 -> 6 needs 3 more units but only 2 remain.
	_, err = f.items.UpdateItem(f.ctx, f.tenantID, itemID, 6)
	require.Error(t, err)
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, f.stock(t))
	assert.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(300)))

	// 3 -> 5 consumes the rest.
	item, err := f.items.UpdateItem(f.ctx, f.tenantID, itemID, 5)
	require.NoError(t, err)
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 0, f.stock(t))
	assert.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(500)))
}

func TestUpdateItemDecreaseReturnsStock(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{{ProductID: f.productID, Quantity: 3}})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = f.items.UpdateItem(f.ctx, f.tenantID, itemID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, f.stock(t))
	assert.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(100)))
}

func TestDeleteItemReturnsStockAndRecomputesTotal(t *testing.T) {
	f := newOrderFixture(t)

	second := &model.Product{
		TenantID:      f.tenantID,
		Name:          "Cup",
		Price:         decimal.NewFromInt(30),
		StockQuantity: 10,
		Active:        true,
	}
	require.NoError(t, f.store.Products().Create(f.ctx, second))

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{
			{ProductID: f.productID, Quantity: 2},
			{ProductID: second.ID, Quantity: 1},
		})
	require.NoError(t, err)
	require.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(230)))

	require.NoError(t, f.items.DeleteItem(f.ctx, f.tenantID, order.Items[0].ID))
	assert.Equal(t, 5, f.stock(t))
	assert.True(t, f.orderTotal(t, order.ID).Equal(decimal.NewFromInt(30)))
}

func TestUpdateItemKeepsUnitPriceSnapshot(t *testing.T) {
	f := newOrderFixture(t)

	order, err := f.orders.CreateOrder(f.ctx, f.tenantID, f.customerID, f.addressID,
		[]OrderLineInput{{ProductID: f.productID, Quantity: 2}})
	require.NoError(t, err)
	itemID := order.Items[0].ID

	product, err := f.store.Products().FindByID(f.ctx, f.tenantID, f.productID)
	require.NoError(t, err)
	product.Price = decimal.NewFromInt(999)
	require.NoError(t, f.store.Products().Update(f.ctx, product))

	item, err := f.items.UpdateItem(f.ctx, f.tenantID, itemID, 3)
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(300)))
}
