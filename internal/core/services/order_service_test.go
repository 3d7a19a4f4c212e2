package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/mocks"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/lorrc/distribution-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders    *mocks.MockOrderRepository
	products  *mocks.MockProductRepository
	shops     *mocks.MockShopRepository
	tx        *mocks.MockTransactionManager
	publisher *mocks.MockEventPublisher
	svc       ports.OrderService
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    mocks.NewMockOrderRepository(),
		products:  mocks.NewMockProductRepository(),
		shops:     mocks.NewMockShopRepository(),
		tx:        mocks.NewMockTransactionManager(),
		publisher: mocks.NewMockEventPublisher(),
	}
	f.tx.On("WithTransaction", mock.Anything)
	f.svc = services.NewOrderService(f.orders, f.products, f.shops, f.tx,
		services.NewAuthorizationService(), f.publisher)
	return f
}

func publishedTypes(p *mocks.MockEventPublisher) []domain.EventType {
	var types []domain.EventType
	for _, call := range p.Calls {
		if call.Method == "Publish" {
			types = append(types, call.Arguments.Get(2).(domain.Event).Type)
		}
	}
	return types
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	areaID := uuid.New()
	salesman := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleSalesman, AreaID: &areaID}
	shop := &domain.Shop{ID: uuid.New(), TenantID: tenantID, AreaID: &areaID, Name: "Corner Store"}

	t.Run("deducts stock and publishes order then stock events", func(t *testing.T) {
		f := newOrderFixture()
		product := &domain.Product{ID: uuid.New(), TenantID: tenantID, Price: 100, Quantity: 10}

		f.shops.On("GetByID", mock.Anything, tenantID, shop.ID).Return(shop, nil)
		f.products.On("GetForUpdate", mock.Anything, tenantID, product.ID).Return(product, nil)
		f.products.On("UpdateQuantity", mock.Anything, product).Return(nil)
		var persisted *domain.Order
		f.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) { persisted = args.Get(1).(*domain.Order) }).
			Return(&domain.Order{ID: uuid.New(), TenantID: tenantID, ShopID: shop.ID, AreaID: &areaID, Status: domain.OrderPending}, nil)
		f.publisher.On("Publish", ctx, mock.Anything, mock.Anything)

		order, err := f.svc.CreateOrder(ctx, salesman, ports.CreateOrderParams{
			ShopID: shop.ID,
			Items: []ports.OrderItemInput{
				{ProductID: product.ID, Quantity: 2},
				{ProductID: product.ID, Quantity: 1},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.OrderPending, order.Status)
		assert.Equal(t, 7, product.Quantity)
		require.NotNil(t, persisted)
		require.Len(t, persisted.Items, 1)
		assert.Equal(t, int64(300), persisted.TotalAmount)
		assert.Equal(t, &areaID, persisted.AreaID)
		assert.Equal(t, salesman.UserID, persisted.CreatedBy)

		assert.Equal(t, []domain.EventType{domain.EventOrderCreated, domain.EventStockUpdated}, publishedTypes(f.publisher))
		f.publisher.AssertCalled(t, "Publish", ctx,
			domain.EventScope{TenantID: tenantID, AreaID: areaID}, mock.Anything)
	})

	t.Run("insufficient stock publishes nothing", func(t *testing.T) {
		f := newOrderFixture()
		product := &domain.Product{ID: uuid.New(), TenantID: tenantID, Quantity: 1}

		f.shops.On("GetByID", mock.Anything, tenantID, shop.ID).Return(shop, nil)
		f.products.On("GetForUpdate", mock.Anything, tenantID, product.ID).Return(product, nil)

		order, err := f.svc.CreateOrder(ctx, salesman, ports.CreateOrderParams{
			ShopID: shop.ID,
			Items:  []ports.OrderItemInput{{ProductID: product.ID, Quantity: 5}},
		})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
		f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Empty(t, f.publisher.Calls)
	})

	t.Run("salesman cannot order for another area", func(t *testing.T) {
		f := newOrderFixture()
		otherArea := uuid.New()
		foreign := &domain.Shop{ID: uuid.New(), TenantID: tenantID, AreaID: &otherArea}

		f.shops.On("GetByID", mock.Anything, tenantID, foreign.ID).Return(foreign, nil)

		_, err := f.svc.CreateOrder(ctx, salesman, ports.CreateOrderParams{
			ShopID: foreign.ID,
			Items:  []ports.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("empty order", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.svc.CreateOrder(ctx, salesman, ports.CreateOrderParams{ShopID: shop.ID})

		assert.ErrorIs(t, err, apperrors.ErrOrderItemsRequired)
		f.tx.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("platform account has no tenant", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.svc.CreateOrder(ctx, domain.Actor{UserID: uuid.New(), Role: domain.RoleSuperAdmin},
			ports.CreateOrderParams{ShopID: shop.ID})

		assert.ErrorIs(t, err, apperrors.ErrTenantRequired)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	manager := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleManager}

	t.Run("cancel restores stock", func(t *testing.T) {
		f := newOrderFixture()
		product := &domain.Product{ID: uuid.New(), TenantID: tenantID, Quantity: 4}
		order := &domain.Order{
			ID: uuid.New(), TenantID: tenantID, Status: domain.OrderConfirmed,
			Items: []domain.OrderItem{{ProductID: product.ID, Quantity: 3}},
		}

		f.orders.On("GetByID", mock.Anything, tenantID, order.ID).Return(order, nil)
		f.products.On("GetForUpdate", mock.Anything, tenantID, product.ID).Return(product, nil)
		f.products.On("UpdateQuantity", mock.Anything, product).Return(nil)
		f.orders.On("UpdateStatus", mock.Anything, order).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything, mock.Anything)

		updated, err := f.svc.UpdateOrderStatus(ctx, manager, order.ID, domain.OrderCancelled)

		require.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, updated.Status)
		assert.Equal(t, 7, product.Quantity)
		assert.Equal(t, []domain.EventType{domain.EventOrderStatusUpdated, domain.EventStockUpdated}, publishedTypes(f.publisher))
	})

	t.Run("confirm leaves stock alone", func(t *testing.T) {
		f := newOrderFixture()
		order := &domain.Order{ID: uuid.New(), TenantID: tenantID, Status: domain.OrderPending}

		f.orders.On("GetByID", mock.Anything, tenantID, order.ID).Return(order, nil)
		f.orders.On("UpdateStatus", mock.Anything, order).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything, mock.Anything)

		_, err := f.svc.UpdateOrderStatus(ctx, manager, order.ID, domain.OrderConfirmed)

		require.NoError(t, err)
		f.products.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, []domain.EventType{domain.EventOrderStatusUpdated}, publishedTypes(f.publisher))
	})

	t.Run("salesman is forbidden", func(t *testing.T) {
		f := newOrderFixture()
		salesman := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleSalesman}

		_, err := f.svc.UpdateOrderStatus(ctx, salesman, uuid.New(), domain.OrderConfirmed)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	manager := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleManager}

	t.Run("delivered orders are kept", func(t *testing.T) {
		f := newOrderFixture()
		order := &domain.Order{ID: uuid.New(), TenantID: tenantID, Status: domain.OrderDelivered}
		f.orders.On("GetByID", mock.Anything, tenantID, order.ID).Return(order, nil)

		err := f.svc.DeleteOrder(ctx, manager, order.ID)

		assert.ErrorIs(t, err, apperrors.ErrOrderNotDeletable)
		assert.Empty(t, f.publisher.Calls)
	})

	t.Run("cancelled order is removed without touching stock", func(t *testing.T) {
		f := newOrderFixture()
		order := &domain.Order{
			ID: uuid.New(), TenantID: tenantID, Status: domain.OrderCancelled,
			Items: []domain.OrderItem{{ProductID: uuid.New(), Quantity: 1}},
		}
		f.orders.On("GetByID", mock.Anything, tenantID, order.ID).Return(order, nil)
		f.orders.On("Delete", mock.Anything, tenantID, order.ID).Return(nil)
		f.publisher.On("Publish", ctx, mock.Anything, mock.Anything)

		require.NoError(t, f.svc.DeleteOrder(ctx, manager, order.ID))

		f.products.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, []domain.EventType{domain.EventOrderDeleted}, publishedTypes(f.publisher))
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("salesman sees own orders", func(t *testing.T) {
		f := newOrderFixture()
		salesman := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleSalesman}

		f.orders.On("List", ctx, ports.ListOrdersRepoParams{
			TenantID:  tenantID,
			CreatedBy: &salesman.UserID,
			Limit:     51,
		}).Return([]*domain.Order{}, nil)

		page, err := f.svc.ListOrders(ctx, salesman, ports.ListOrdersParams{})

		require.NoError(t, err)
		assert.Equal(t, 50, page.Limit)
		assert.False(t, page.HasMore)
		f.orders.AssertExpectations(t)
	})

	t.Run("manager sees the tenant, page size capped", func(t *testing.T) {
		f := newOrderFixture()
		manager := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleManager}

		f.orders.On("List", ctx, ports.ListOrdersRepoParams{
			TenantID: tenantID,
			Limit:    201,
			Offset:   10,
		}).Return([]*domain.Order{}, nil)

		page, err := f.svc.ListOrders(ctx, manager, ports.ListOrdersParams{Limit: 1000, Offset: 10})

		require.NoError(t, err)
		assert.Equal(t, 200, page.Limit)
		assert.Equal(t, 10, page.Offset)
		f.orders.AssertExpectations(t)
	})

	t.Run("extra row marks another page", func(t *testing.T) {
		f := newOrderFixture()
		manager := domain.Actor{UserID: uuid.New(), TenantID: tenantID, Role: domain.RoleManager}
		rows := []*domain.Order{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}

		f.orders.On("List", ctx, ports.ListOrdersRepoParams{
			TenantID: tenantID,
			Limit:    3,
		}).Return(rows, nil)

		page, err := f.svc.ListOrders(ctx, manager, ports.ListOrdersParams{Limit: 2})

		require.NoError(t, err)
		assert.True(t, page.HasMore)
		assert.Equal(t, rows[:2], page.Orders)
	})
}
