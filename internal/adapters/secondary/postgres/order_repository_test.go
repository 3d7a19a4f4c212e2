package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

type orderFixture struct {
	tenantID uuid.UUID
	salesman *domain.Staff
	shop     *domain.Shop
	products []*domain.Product
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	ctx := context.Background()
	tenantID := newTenant(t)

	area, err := domain.NewArea("Route 1", &tenantID)
	require.NoError(t, err)
	_, err = NewAreaRepository(testPool).Create(ctx, area)
	require.NoError(t, err)

	salesman, err := NewStaffRepository(testPool).Create(ctx, newTestStaff(t, tenantID, domain.RoleSalesman, &area.ID))
	require.NoError(t, err)

	shop, err := domain.NewShop(domain.ShopParams{Name: "Shop", AreaID: &area.ID}, tenantID)
	require.NoError(t, err)
	_, err = NewShopRepository(testPool).Create(ctx, shop)
	require.NoError(t, err)

	products := make([]*domain.Product, 0, 2)
	for _, name := range []string{"Rice", "Oil"} {
		p, err := domain.NewProduct(domain.ProductParams{Name: name, Price: 100}, 50, tenantID)
		require.NoError(t, err)
		_, err = NewProductRepository(testPool).Create(ctx, p)
		require.NoError(t, err)
		products = append(products, p)
	}

	return orderFixture{tenantID: tenantID, salesman: salesman, shop: shop, products: products}
}

func (f orderFixture) newOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.OrderParams{
		TenantID:  f.tenantID,
		ShopID:    f.shop.ID,
		AreaID:    f.shop.AreaID,
		CreatedBy: f.salesman.ID,
		Items: []domain.OrderItem{
			{ProductID: f.products[0].ID, Quantity: 2, UnitPrice: 100},
			{ProductID: f.products[1].ID, Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)
	return order
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(testPool)
	f := newOrderFixture(t)

	t.Run("Create stores items", func(t *testing.T) {
		order := f.newOrder(t)
		created, err := repo.Create(ctx, order)
		require.NoError(t, err)
		assert.Len(t, created.Items, 2)

		got, err := repo.GetByID(ctx, f.tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, got.Status)
		assert.EqualValues(t, 300, got.TotalAmount)
		assert.ElementsMatch(t, order.Items, got.Items)
		require.NotNil(t, got.AreaID)
		assert.Equal(t, *f.shop.AreaID, *got.AreaID)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		order := f.newOrder(t)
		_, err := repo.Create(ctx, order)
		require.NoError(t, err)

		require.NoError(t, order.UpdateStatus(domain.OrderConfirmed))
		require.NoError(t, repo.UpdateStatus(ctx, order))

		got, err := repo.GetByID(ctx, f.tenantID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderConfirmed, got.Status)
		assert.NotNil(t, got.UpdatedAt)
	})

	t.Run("List filters", func(t *testing.T) {
		tenant := newOrderFixture(t)
		first := tenant.newOrder(t)
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)
		second := tenant.newOrder(t)
		_, err = repo.Create(ctx, second)
		require.NoError(t, err)
		require.NoError(t, second.UpdateStatus(domain.OrderCancelled))
		require.NoError(t, repo.UpdateStatus(ctx, second))

		all, err := repo.List(ctx, ports.ListOrdersRepoParams{TenantID: tenant.tenantID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, all, 2)
		for _, o := range all {
			assert.Len(t, o.Items, 2)
		}

		cancelled := domain.OrderCancelled
		filtered, err := repo.List(ctx, ports.ListOrdersRepoParams{TenantID: tenant.tenantID, Status: &cancelled, Limit: 10})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, second.ID, filtered[0].ID)

		stranger := uuid.New()
		none, err := repo.List(ctx, ports.ListOrdersRepoParams{TenantID: tenant.tenantID, CreatedBy: &stranger, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, none)

		paged, err := repo.List(ctx, ports.ListOrdersRepoParams{TenantID: tenant.tenantID, Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, paged, 1)
	})

	t.Run("Delete removes items", func(t *testing.T) {
		order := f.newOrder(t)
		_, err := repo.Create(ctx, order)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, f.tenantID, order.ID))

		var count int
		require.NoError(t, testPool.QueryRow(ctx,
			`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, order.ID).Scan(&count))
		assert.Zero(t, count)

		_, err = repo.GetByID(ctx, f.tenantID, order.ID)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})

	t.Run("Ordered products cannot be deleted", func(t *testing.T) {
		order := f.newOrder(t)
		_, err := repo.Create(ctx, order)
		require.NoError(t, err)

		err = NewProductRepository(testPool).Delete(ctx, f.tenantID, f.products[0].ID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestTransactionManager(t *testing.T) {
	ctx := context.Background()
	tm := NewTransactionManager(testPool)
	products := NewProductRepository(testPool)
	orders := NewOrderRepository(testPool)
	f := newOrderFixture(t)

	t.Run("Rollback undoes every write", func(t *testing.T) {
		order := f.newOrder(t)
		errBoom := errors.New("boom")

		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			product, err := products.GetForUpdate(ctx, f.tenantID, f.products[0].ID)
			if err != nil {
				return err
			}
			if err := product.AdjustStock(domain.StockDeduct, 5); err != nil {
				return err
			}
			if err := products.UpdateQuantity(ctx, product); err != nil {
				return err
			}
			if _, err := orders.Create(ctx, order); err != nil {
				return err
			}
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		product, err := products.GetByID(ctx, f.tenantID, f.products[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 50, product.Quantity)

		_, err = orders.GetByID(ctx, f.tenantID, order.ID)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})

	t.Run("Commit keeps writes", func(t *testing.T) {
		order := f.newOrder(t)

		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := orders.Create(ctx, order)
			return err
		})
		require.NoError(t, err)

		_, err = orders.GetByID(ctx, f.tenantID, order.ID)
		assert.NoError(t, err)
	})

	t.Run("Nested calls join the outer transaction", func(t *testing.T) {
		order := f.newOrder(t)
		errBoom := errors.New("boom")

		err := tm.WithTransaction(ctx, func(ctx context.Context) error {
			if err := tm.WithTransaction(ctx, func(ctx context.Context) error {
				_, err := orders.Create(ctx, order)
				return err
			}); err != nil {
				return err
			}
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		_, err = orders.GetByID(ctx, f.tenantID, order.ID)
		assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	})
}
