package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Login(ctx context.Context, mobile, password string) (*domain.Staff, error)
}

// AuthorizationService defines the port for checking actor permissions.
type AuthorizationService interface {
	Can(ctx context.Context, actor domain.Actor, permission string) (bool, error)
	GetPermissions(ctx context.Context, actor domain.Actor) ([]string, error)
}

// OrderItemInput is one requested order line.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderParams defines the input for placing an order.
type CreateOrderParams struct {
	ShopID uuid.UUID
	Items  []OrderItemInput
}

// ListOrdersParams defines the input for listing orders.
type ListOrdersParams struct {
	Status *domain.OrderStatus
	AreaID *uuid.UUID
	Limit  int
	Offset int
}

// OrderPage is one page of an order listing. Limit and Offset are the
// values actually applied.
type OrderPage struct {
	Orders  []*domain.Order
	Limit   int
	Offset  int
	HasMore bool
}

// OrderService defines order taking and fulfilment.
type OrderService interface {
	CreateOrder(ctx context.Context, actor domain.Actor, params CreateOrderParams) (*domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor, params ListOrdersParams) (*OrderPage, error)
	UpdateOrderStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// StockService defines manual stock movements.
type StockService interface {
	AdjustStock(ctx context.Context, actor domain.Actor, productID uuid.UUID, action domain.StockAction, quantity int) (*domain.Product, error)
}

type ProductService interface {
	CreateProduct(ctx context.Context, actor domain.Actor, params domain.ProductParams, quantity int) (*domain.Product, error)
	GetProduct(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, actor domain.Actor) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, id uuid.UUID, params domain.ProductParams) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type CategoryService interface {
	CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, actor domain.Actor) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type ShopService interface {
	CreateShop(ctx context.Context, actor domain.Actor, params domain.ShopParams) (*domain.Shop, error)
	GetShop(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Shop, error)
	ListShops(ctx context.Context, actor domain.Actor, areaID *uuid.UUID) ([]*domain.Shop, error)
	UpdateShop(ctx context.Context, actor domain.Actor, id uuid.UUID, params domain.ShopParams) (*domain.Shop, error)
	DeleteShop(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// AreaService manages areas. Global areas are created by platform accounts.
type AreaService interface {
	CreateArea(ctx context.Context, actor domain.Actor, name string) (*domain.Area, error)
	ListAreas(ctx context.Context, actor domain.Actor) ([]*domain.Area, error)
	UpdateArea(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.Area, error)
	DeleteArea(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// UpdateStaffParams defines the editable staff fields.
type UpdateStaffParams struct {
	Name   string
	Mobile string
	Role   domain.Role
	AreaID *uuid.UUID
}

type StaffService interface {
	CreateStaff(ctx context.Context, actor domain.Actor, params domain.StaffParams) (*domain.Staff, error)
	GetStaff(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Staff, error)
	ListStaff(ctx context.Context, actor domain.Actor) ([]*domain.Staff, error)
	UpdateStaff(ctx context.Context, actor domain.Actor, id uuid.UUID, params UpdateStaffParams) (*domain.Staff, error)
	UpdateStaffStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, active bool) (*domain.Staff, error)
	DeleteStaff(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// TransactionManager defines the port for running atomic operations.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
