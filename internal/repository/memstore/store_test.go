package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/apperr"
	"shopbase/internal/model"
	"shopbase/internal/repository"
)

func seedProduct(t *testing.T, store *Store, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		TenantID:      1,
		Name:          "Teapot",
		Price:         decimal.NewFromInt(100),
		StockQuantity: stock,
		Active:        true,
	}
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func TestInTxRollsBackOnError(t *testing.T) {
	store := New()
	ctx := context.Background()
	product := seedProduct(t, store, 5)

	failure := errors.New("boom")
	err := store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Products().DecrementStock(ctx, 1, product.ID, 3); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	// The decrement inside the failed transaction never became visible.
	reloaded, err := store.Products().FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.StockQuantity)
}

func TestInTxCommitsOnSuccess(t *testing.T) {
	store := New()
	ctx := context.Background()
	product := seedProduct(t, store, 5)

	err := store.InTx(ctx, func(tx repository.Store) error {
		return tx.Products().DecrementStock(ctx, 1, product.ID, 3)
	})
	require.NoError(t, err)

	reloaded, err := store.Products().FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.StockQuantity)
}

func TestNestedInTxJoinsAmbientTransaction(t *testing.T) {
	store := New()
	ctx := context.Background()
	product := seedProduct(t, store, 5)

	err := store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Products().DecrementStock(ctx, 1, product.ID, 1); err != nil {
			return err
		}
		// The nested call must run against the same snapshot, not deadlock
		// or fork a second one.
		return tx.InTx(ctx, func(inner repository.Store) error {
			return inner.Products().DecrementStock(ctx, 1, product.ID, 1)
		})
	})
	require.NoError(t, err)

	reloaded, err := store.Products().FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.StockQuantity)
}

func TestDecrementStockConditional(t *testing.T) {
	store := New()
	ctx := context.Background()
	product := seedProduct(t, store, 2)

	err := store.Products().DecrementStock(ctx, 1, product.ID, 3)
	require.Error(t, err)
	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// A failed decrement changes nothing.
	reloaded, err := store.Products().FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.StockQuantity)

	require.NoError(t, store.Products().DecrementStock(ctx, 1, product.ID, 2))
	reloaded, err = store.Products().FindByID(ctx, 1, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.StockQuantity)
}

func TestTenantScopingOnFind(t *testing.T) {
	store := New()
	ctx := context.Background()
	product := seedProduct(t, store, 5)

	// The right id under the wrong tenant is a not-found, never a leak.
	_, err := store.Products().FindByID(ctx, 2, product.ID)
	assert.True(t, apperr.IsNotFound(err))
}
