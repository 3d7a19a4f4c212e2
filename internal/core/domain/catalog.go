package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
)

// Area is a sales territory. Areas without a tenant are shared by every
// distributor on the platform.
type Area struct {
	ID        uuid.UUID
	TenantID  *uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// IsGlobal reports whether the area is platform wide.
func (a *Area) IsGlobal() bool {
	return a.TenantID == nil
}

// NewArea creates an area. A nil tenantID creates a global area.
func NewArea(name string, tenantID *uuid.UUID) (*Area, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return &Area{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename updates the area name.
func (a *Area) Rename(name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	a.Name = name
	a.UpdatedAt = now()
	return nil
}

// Category groups products.
type Category struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewCategory creates a category inside a tenant.
func NewCategory(name string, tenantID uuid.UUID) (*Category, error) {
	if tenantID == uuid.Nil {
		return nil, apperrors.ErrTenantRequired
	}
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return &Category{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename updates the category name.
func (c *Category) Rename(name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	c.Name = name
	c.UpdatedAt = now()
	return nil
}

// Shop is a retail customer located in an area.
type Shop struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	AreaID    *uuid.UUID
	Name      string
	OwnerName string
	Mobile    string
	Address   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ShopParams holds the editable fields of a shop.
type ShopParams struct {
	Name      string
	OwnerName string
	Mobile    string
	Address   string
	AreaID    *uuid.UUID
}

// NewShop creates a shop inside a tenant.
func NewShop(params ShopParams, tenantID uuid.UUID) (*Shop, error) {
	if tenantID == uuid.Nil {
		return nil, apperrors.ErrTenantRequired
	}
	shop := &Shop{ID: uuid.New(), TenantID: tenantID, CreatedAt: time.Now().UTC()}
	if err := shop.apply(params); err != nil {
		return nil, err
	}
	shop.UpdatedAt = nil
	return shop, nil
}

// Update replaces the editable fields of the shop.
func (s *Shop) Update(params ShopParams) error {
	return s.apply(params)
}

func (s *Shop) apply(params ShopParams) error {
	name, err := normalizeName(params.Name)
	if err != nil {
		return err
	}
	s.Name = name
	s.OwnerName = strings.TrimSpace(params.OwnerName)
	s.Mobile = strings.TrimSpace(params.Mobile)
	s.Address = strings.TrimSpace(params.Address)
	s.AreaID = params.AreaID
	s.UpdatedAt = now()
	return nil
}

// StockAction is the direction of a stock adjustment.
type StockAction string

const (
	StockAdd    StockAction = "add"
	StockDeduct StockAction = "deduct"
)

// IsValid reports whether a is a known action.
func (a StockAction) IsValid() bool {
	return a == StockAdd || a == StockDeduct
}

// Product is a sellable item with on-hand stock. Price is in minor units.
type Product struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	SKU        string
	Price      int64
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// ProductParams holds the editable fields of a product.
type ProductParams struct {
	Name       string
	SKU        string
	Price      int64
	CategoryID *uuid.UUID
}

// NewProduct creates a product with an initial quantity.
func NewProduct(params ProductParams, quantity int, tenantID uuid.UUID) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, apperrors.ErrTenantRequired
	}
	if quantity < 0 {
		return nil, apperrors.ErrInvalidQuantity
	}
	p := &Product{ID: uuid.New(), TenantID: tenantID, Quantity: quantity, CreatedAt: time.Now().UTC()}
	if err := p.Update(params); err != nil {
		return nil, err
	}
	p.UpdatedAt = nil
	return p, nil
}

// Update replaces the editable fields. Quantity only changes via AdjustStock.
func (p *Product) Update(params ProductParams) error {
	name, err := normalizeName(params.Name)
	if err != nil {
		return err
	}
	if params.Price < 0 {
		return apperrors.ErrInvalidPrice
	}
	p.Name = name
	p.SKU = strings.TrimSpace(params.SKU)
	p.Price = params.Price
	p.CategoryID = params.CategoryID
	p.UpdatedAt = now()
	return nil
}

// AdjustStock applies a stock movement. Quantity never goes negative.
func (p *Product) AdjustStock(action StockAction, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}

	switch action {
	case StockAdd:
		p.Quantity += quantity
	case StockDeduct:
		if p.Quantity < quantity {
			return apperrors.ErrInsufficientStock
		}
		p.Quantity -= quantity
	default:
		return apperrors.ErrInvalidStockOp
	}

	p.UpdatedAt = now()
	return nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.ErrNameRequired
	}
	if len(name) > MaxNameLength {
		return "", apperrors.ErrNameTooLong
	}
	return name, nil
}

func now() *time.Time {
	t := time.Now().UTC()
	return &t
}
