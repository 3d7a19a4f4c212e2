package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

func TestAreaRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAreaRepository(testPool)
	tenantID := newTenant(t)
	otherTenant := newTenant(t)

	global, err := domain.NewArea("Global "+uuid.NewString()[:6], nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, global)
	require.NoError(t, err)

	own, err := domain.NewArea("North", &tenantID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, own)
	require.NoError(t, err)

	foreign, err := domain.NewArea("South", &otherTenant)
	require.NoError(t, err)
	_, err = repo.Create(ctx, foreign)
	require.NoError(t, err)

	t.Run("ListVisible includes global areas", func(t *testing.T) {
		areas, err := repo.ListVisible(ctx, tenantID)
		require.NoError(t, err)

		ids := make(map[uuid.UUID]bool)
		for _, a := range areas {
			ids[a.ID] = true
		}
		assert.True(t, ids[global.ID])
		assert.True(t, ids[own.ID])
		assert.False(t, ids[foreign.ID])
	})

	t.Run("Get keeps the global flag", func(t *testing.T) {
		got, err := repo.GetByID(ctx, global.ID)
		require.NoError(t, err)
		assert.True(t, got.IsGlobal())

		got, err = repo.GetByID(ctx, own.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TenantID)
		assert.Equal(t, tenantID, *got.TenantID)
	})

	t.Run("Rename", func(t *testing.T) {
		require.NoError(t, own.Rename("North East"))
		updated, err := repo.Update(ctx, own)
		require.NoError(t, err)
		assert.Equal(t, "North East", updated.Name)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, foreign.ID))
		_, err := repo.GetByID(ctx, foreign.ID)
		assert.ErrorIs(t, err, apperrors.ErrAreaNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, foreign.ID), apperrors.ErrAreaNotFound)
	})
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testPool)
	tenantID := newTenant(t)

	category, err := domain.NewCategory("Beverages", tenantID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, category)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, newTenant(t), category.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound, "other tenants cannot see the category")

	require.NoError(t, category.Rename("Drinks"))
	updated, err := repo.Update(ctx, category)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Name)

	list, err := repo.ListByTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, tenantID, category.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tenantID, category.ID), apperrors.ErrCategoryNotFound)
}

func TestShopRepository(t *testing.T) {
	ctx := context.Background()
	areas := NewAreaRepository(testPool)
	repo := NewShopRepository(testPool)
	tenantID := newTenant(t)

	area, err := domain.NewArea("Market", &tenantID)
	require.NoError(t, err)
	_, err = areas.Create(ctx, area)
	require.NoError(t, err)

	inArea, err := domain.NewShop(domain.ShopParams{Name: "Corner Store", OwnerName: "Ravi", AreaID: &area.ID}, tenantID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, inArea)
	require.NoError(t, err)

	noArea, err := domain.NewShop(domain.ShopParams{Name: "Kiosk"}, tenantID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, noArea)
	require.NoError(t, err)

	t.Run("Optional fields survive", func(t *testing.T) {
		got, err := repo.GetByID(ctx, tenantID, noArea.ID)
		require.NoError(t, err)
		assert.Nil(t, got.AreaID)
		assert.Equal(t, "", got.OwnerName)

		got, err = repo.GetByID(ctx, tenantID, inArea.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ravi", got.OwnerName)
	})

	t.Run("List filters by area", func(t *testing.T) {
		all, err := repo.ListByTenant(ctx, tenantID, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		filtered, err := repo.ListByTenant(ctx, tenantID, &area.ID)
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, inArea.ID, filtered[0].ID)
	})

	t.Run("Update", func(t *testing.T) {
		require.NoError(t, noArea.Update(domain.ShopParams{Name: "Big Kiosk", AreaID: &area.ID}))
		updated, err := repo.Update(ctx, noArea)
		require.NoError(t, err)
		assert.Equal(t, "Big Kiosk", updated.Name)
		require.NotNil(t, updated.AreaID)
		assert.Equal(t, area.ID, *updated.AreaID)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, tenantID, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrShopNotFound)
	})
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(testPool)
	tenantID := newTenant(t)

	product, err := domain.NewProduct(domain.ProductParams{Name: "Soap", SKU: "SOAP-1", Price: 250}, 10, tenantID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, product)
	require.NoError(t, err)

	t.Run("Quantity updates only touch stock", func(t *testing.T) {
		require.NoError(t, product.AdjustStock(domain.StockDeduct, 4))
		require.NoError(t, repo.UpdateQuantity(ctx, product))

		got, err := repo.GetByID(ctx, tenantID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, got.Quantity)
		assert.EqualValues(t, 250, got.Price)
		assert.Equal(t, "SOAP-1", got.SKU)
	})

	t.Run("Update keeps quantity", func(t *testing.T) {
		require.NoError(t, product.Update(domain.ProductParams{Name: "Soap Bar", Price: 300}))
		product.Quantity = 999
		updated, err := repo.Update(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, "Soap Bar", updated.Name)
		assert.Equal(t, 6, updated.Quantity)
	})

	t.Run("Negative stock is rejected by the database", func(t *testing.T) {
		broken := *product
		broken.Quantity = -1
		assert.Error(t, repo.UpdateQuantity(ctx, &broken))
	})

	t.Run("Tenant isolation", func(t *testing.T) {
		_, err := repo.GetForUpdate(ctx, newTenant(t), product.ID)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
		assert.ErrorIs(t, repo.UpdateQuantity(ctx, &domain.Product{ID: uuid.New(), TenantID: tenantID}), apperrors.ErrProductNotFound)
	})
}
