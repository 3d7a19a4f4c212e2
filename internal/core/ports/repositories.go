package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

// StaffRepository persists staff accounts. Mobile numbers are unique platform wide.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.Staff, error)
	Update(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Staff, error)
}

// AreaRepository persists sales areas.
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) (*domain.Area, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error)
	Update(ctx context.Context, area *domain.Area) (*domain.Area, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListVisible returns the global areas plus those owned by tenantID.
	ListVisible(ctx context.Context, tenantID uuid.UUID) ([]*domain.Area, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Category, error)
}

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// ListByTenant filters by area when areaID is not nil.
	ListByTenant(ctx context.Context, tenantID uuid.UUID, areaID *uuid.UUID) ([]*domain.Shop, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateQuantity(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Product, error)
}

// ListOrdersRepoParams filters an order listing. Nil filters are ignored.
type ListOrdersRepoParams struct {
	TenantID  uuid.UUID
	AreaID    *uuid.UUID
	CreatedBy *uuid.UUID
	Status    *domain.OrderStatus
	Limit     int32
	Offset    int32
}

type OrderRepository interface {
	// Create persists the order together with its items.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, params ListOrdersRepoParams) ([]*domain.Order, error)
}
