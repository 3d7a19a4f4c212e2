package http

import (
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/samber/lo"
)

// OrderItemDTO is one order line in responses.
type OrderItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// OrderDTO defines the JSON response for orders.
type OrderDTO struct {
	ID          string         `json:"id"`
	ShopID      string         `json:"shopId"`
	AreaID      *string        `json:"areaId"`
	CreatedBy   string         `json:"createdBy"`
	Status      string         `json:"status"`
	Items       []OrderItemDTO `json:"items"`
	TotalAmount int64          `json:"totalAmount"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   *string        `json:"updatedAt"`
}

func toOrderDTO(order *domain.Order) OrderDTO {
	return OrderDTO{
		ID:        order.ID.String(),
		ShopID:    order.ShopID.String(),
		AreaID:    uuidPtrString(order.AreaID),
		CreatedBy: order.CreatedBy.String(),
		Status:    string(order.Status),
		Items: lo.Map(order.Items, func(item domain.OrderItem, _ int) OrderItemDTO {
			return OrderItemDTO{
				ProductID: item.ProductID.String(),
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
		}),
		TotalAmount: order.TotalAmount,
		CreatedAt:   formatTime(order.CreatedAt),
		UpdatedAt:   formatTimePtr(order.UpdatedAt),
	}
}

// ProductDTO defines the JSON response for products.
type ProductDTO struct {
	ID         string  `json:"id"`
	CategoryID *string `json:"categoryId"`
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Price      int64   `json:"price"`
	Quantity   int     `json:"quantity"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  *string `json:"updatedAt"`
}

func toProductDTO(p *domain.Product) ProductDTO {
	return ProductDTO{
		ID:         p.ID.String(),
		CategoryID: uuidPtrString(p.CategoryID),
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      p.Price,
		Quantity:   p.Quantity,
		CreatedAt:  formatTime(p.CreatedAt),
		UpdatedAt:  formatTimePtr(p.UpdatedAt),
	}
}

// CategoryDTO defines the JSON response for categories.
type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func toCategoryDTO(c *domain.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID.String(), Name: c.Name, CreatedAt: formatTime(c.CreatedAt)}
}

// ShopDTO defines the JSON response for shops.
type ShopDTO struct {
	ID        string  `json:"id"`
	AreaID    *string `json:"areaId"`
	Name      string  `json:"name"`
	OwnerName string  `json:"ownerName"`
	Mobile    string  `json:"mobile"`
	Address   string  `json:"address"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt"`
}

func toShopDTO(s *domain.Shop) ShopDTO {
	return ShopDTO{
		ID:        s.ID.String(),
		AreaID:    uuidPtrString(s.AreaID),
		Name:      s.Name,
		OwnerName: s.OwnerName,
		Mobile:    s.Mobile,
		Address:   s.Address,
		CreatedAt: formatTime(s.CreatedAt),
		UpdatedAt: formatTimePtr(s.UpdatedAt),
	}
}

// AreaDTO defines the JSON response for areas.
type AreaDTO struct {
	ID       string  `json:"id"`
	TenantID *string `json:"tenantId"`
	Name     string  `json:"name"`
	Global   bool    `json:"global"`
}

func toAreaDTO(a *domain.Area) AreaDTO {
	return AreaDTO{ID: a.ID.String(), TenantID: uuidPtrString(a.TenantID), Name: a.Name, Global: a.IsGlobal()}
}

// StaffDTO defines the JSON response for staff members. The password hash
// never leaves the service.
type StaffDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Mobile    string  `json:"mobile"`
	Role      string  `json:"role"`
	AreaID    *string `json:"areaId"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
}

func toStaffDTO(s *domain.Staff) StaffDTO {
	return StaffDTO{
		ID:        s.ID.String(),
		Name:      s.Name,
		Mobile:    s.Mobile,
		Role:      string(s.Role),
		AreaID:    uuidPtrString(s.AreaID),
		IsActive:  s.IsActive,
		CreatedAt: formatTime(s.CreatedAt),
	}
}

// mapAll converts a slice of entities with fn.
func mapAll[T any, D any](items []*T, fn func(*T) D) []D {
	return lo.Map(items, func(item *T, _ int) D { return fn(item) })
}
