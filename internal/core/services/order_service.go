package services

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

const (
	defaultOrderPageSize = 50
	maxOrderPageSize     = 200
)

// OrderService implements order taking. Stock moves in the same transaction
// as the order row so the two never disagree.
type OrderService struct {
	orderRepo   ports.OrderRepository
	productRepo ports.ProductRepository
	shopRepo    ports.ShopRepository
	txManager   ports.TransactionManager
	authzSvc    ports.AuthorizationService
	publisher   ports.EventPublisher
}

var _ ports.OrderService = (*OrderService)(nil)

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo ports.OrderRepository,
	productRepo ports.ProductRepository,
	shopRepo ports.ShopRepository,
	txManager ports.TransactionManager,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		txManager:   txManager,
		authzSvc:    authzSvc,
		publisher:   publisher,
	}
}

// CreateOrder deducts stock for every line and records a pending order.
func (s *OrderService) CreateOrder(ctx context.Context, actor domain.Actor, params ports.CreateOrderParams) (*domain.Order, error) {
	// 1. Authorization Check
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermOrdersCreate); err != nil {
		return nil, err
	}

	lines := mergeOrderLines(params.Items)
	if len(lines) == 0 {
		return nil, apperrors.ErrOrderItemsRequired
	}

	var (
		order    *domain.Order
		shop     *domain.Shop
		adjusted []*domain.Product
	)

	// 2. Deduct stock and persist atomically
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		shop, err = s.shopRepo.GetByID(ctx, actor.TenantID, params.ShopID)
		if err != nil {
			return err
		}
		if !canServeArea(actor, shop.AreaID) {
			return apperrors.ErrForbidden
		}

		items := make([]domain.OrderItem, 0, len(lines))
		for _, line := range lines {
			product, err := applyStock(ctx, s.productRepo, actor.TenantID, line.ProductID, domain.StockDeduct, line.Quantity)
			if err != nil {
				return err
			}
			adjusted = append(adjusted, product)
			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
		}

		order, err = domain.NewOrder(domain.OrderParams{
			TenantID:  actor.TenantID,
			ShopID:    shop.ID,
			AreaID:    shop.AreaID,
			CreatedBy: actor.UserID,
			Items:     items,
		})
		if err != nil {
			return err
		}

		order, err = s.orderRepo.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Announce after commit
	s.publisher.Publish(ctx, orderScope(order),
		domain.NewEvent(domain.EventOrderCreated, domain.NewOrderCreatedPayload(order, shop.Name)))
	for _, product := range adjusted {
		publishStock(ctx, s.publisher, product, domain.StockDeduct)
	}

	return order, nil
}

// GetOrder returns one order. Salesmen only see their own orders.
func (s *OrderService) GetOrder(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Order, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermOrdersRead); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if order.CreatedBy != actor.UserID {
		canReadAll, _ := s.authzSvc.Can(ctx, actor, PermOrdersReadAll)
		if !canReadAll {
			return nil, apperrors.ErrForbidden
		}
	}

	return order, nil
}

// ListOrders lists the tenant's orders, or the actor's own without orders:read:all.
// One extra row is fetched to tell whether another page follows.
func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor, params ports.ListOrdersParams) (*ports.OrderPage, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermOrdersRead); err != nil {
		return nil, err
	}

	canReadAll, err := s.authzSvc.Can(ctx, actor, PermOrdersReadAll)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultOrderPageSize
	}
	limit = min(limit, maxOrderPageSize)
	offset := max(params.Offset, 0)

	repoParams := ports.ListOrdersRepoParams{
		TenantID: actor.TenantID,
		AreaID:   params.AreaID,
		Status:   params.Status,
		Limit:    int32(limit + 1),
		Offset:   int32(offset),
	}
	if !canReadAll {
		repoParams.CreatedBy = &actor.UserID
	}

	orders, err := s.orderRepo.List(ctx, repoParams)
	if err != nil {
		return nil, err
	}

	page := &ports.OrderPage{Orders: orders, Limit: limit, Offset: offset}
	if len(orders) > limit {
		page.Orders = orders[:limit]
		page.HasMore = true
	}
	return page, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Cancelling returns
// the items to stock.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermOrdersUpdate); err != nil {
		return nil, err
	}

	var (
		order    *domain.Order
		restored []*domain.Product
	)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}

		heldStock := order.HoldsStock()
		if err := order.UpdateStatus(status); err != nil {
			return err
		}

		if heldStock && !order.HoldsStock() {
			restored, err = s.restoreStock(ctx, order)
			if err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, orderScope(order),
		domain.NewEvent(domain.EventOrderStatusUpdated, domain.OrderStatusPayload{
			OrderID: order.ID.String(),
			Status:  string(order.Status),
		}))
	for _, product := range restored {
		publishStock(ctx, s.publisher, product, domain.StockAdd)
	}

	return order, nil
}

// DeleteOrder removes a pending or cancelled order.
func (s *OrderService) DeleteOrder(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermOrdersDelete); err != nil {
		return err
	}

	var (
		order    *domain.Order
		restored []*domain.Product
	)

	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByID(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if !order.Deletable() {
			return apperrors.ErrOrderNotDeletable
		}

		if order.HoldsStock() {
			restored, err = s.restoreStock(ctx, order)
			if err != nil {
				return err
			}
		}

		return s.orderRepo.Delete(ctx, actor.TenantID, order.ID)
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, orderScope(order),
		domain.NewEvent(domain.EventOrderDeleted, domain.OrderDeletedPayload{OrderID: order.ID.String()}))
	for _, product := range restored {
		publishStock(ctx, s.publisher, product, domain.StockAdd)
	}

	return nil
}

func (s *OrderService) restoreStock(ctx context.Context, order *domain.Order) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := applyStock(ctx, s.productRepo, order.TenantID, item.ProductID, domain.StockAdd, item.Quantity)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func orderScope(order *domain.Order) domain.EventScope {
	return domain.EventScope{TenantID: order.TenantID, AreaID: domain.AreaScope(order.AreaID)}
}

// canServeArea restricts salesmen to shops in their assigned area.
func canServeArea(actor domain.Actor, areaID *uuid.UUID) bool {
	if actor.Role != domain.RoleSalesman || actor.AreaID == nil {
		return true
	}
	return areaID != nil && *areaID == *actor.AreaID
}

// mergeOrderLines folds duplicate products into one line and sorts by
// product ID so concurrent orders lock rows in the same order.
func mergeOrderLines(items []ports.OrderItemInput) []ports.OrderItemInput {
	totals := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		totals[item.ProductID] += item.Quantity
	}

	lines := make([]ports.OrderItemInput, 0, len(totals))
	for productID, quantity := range totals {
		lines = append(lines, ports.OrderItemInput{ProductID: productID, Quantity: quantity})
	}
	slices.SortFunc(lines, func(a, b ports.OrderItemInput) int {
		return slices.Compare(a.ProductID[:], b.ProductID[:])
	})
	return lines
}
