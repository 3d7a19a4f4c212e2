package domain

import "github.com/google/uuid"

// Event payloads carry only what clients need to patch their local state.

type OrderItemPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderCreatedPayload struct {
	OrderID     string             `json:"orderId"`
	ShopID      string             `json:"shopId"`
	ShopName    string             `json:"shopName"`
	AreaID      *string            `json:"areaId"`
	Status      string             `json:"status"`
	TotalAmount int64              `json:"totalAmount"`
	Items       []OrderItemPayload `json:"items"`
}

type OrderStatusPayload struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type OrderDeletedPayload struct {
	OrderID string `json:"orderId"`
}

type StockPayload struct {
	ProductID string      `json:"productId"`
	Quantity  int         `json:"quantity"`
	Action    StockAction `json:"action"`
}

type ShopPayload struct {
	ShopID    string  `json:"shopId"`
	Name      string  `json:"name,omitempty"`
	OwnerName string  `json:"ownerName,omitempty"`
	Mobile    string  `json:"mobile,omitempty"`
	AreaID    *string `json:"areaId,omitempty"`
}

type AreaPayload struct {
	AreaID string `json:"areaId"`
	Name   string `json:"name,omitempty"`
}

type ProductPayload struct {
	ID         string  `json:"id"`
	CategoryID *string `json:"categoryId,omitempty"`
	Name       string  `json:"name,omitempty"`
	SKU        string  `json:"sku,omitempty"`
	Price      int64   `json:"price"`
	Quantity   int     `json:"quantity"`
}

type CategoryPayload struct {
	CategoryID string `json:"categoryId"`
	Name       string `json:"name,omitempty"`
}

type StaffPayload struct {
	StaffID  string  `json:"staffId"`
	Name     string  `json:"name,omitempty"`
	Mobile   string  `json:"mobile,omitempty"`
	Role     Role    `json:"role,omitempty"`
	AreaID   *string `json:"areaId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}

// NewOrderCreatedPayload builds the order:created payload.
func NewOrderCreatedPayload(order *Order, shopName string) OrderCreatedPayload {
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{ProductID: item.ProductID.String(), Quantity: item.Quantity})
	}
	return OrderCreatedPayload{
		OrderID:     order.ID.String(),
		ShopID:      order.ShopID.String(),
		ShopName:    shopName,
		AreaID:      optionalID(order.AreaID),
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		Items:       items,
	}
}

func NewStockPayload(product *Product, action StockAction) StockPayload {
	return StockPayload{ProductID: product.ID.String(), Quantity: product.Quantity, Action: action}
}

func NewShopPayload(shop *Shop) ShopPayload {
	return ShopPayload{
		ShopID:    shop.ID.String(),
		Name:      shop.Name,
		OwnerName: shop.OwnerName,
		Mobile:    shop.Mobile,
		AreaID:    optionalID(shop.AreaID),
	}
}

func NewAreaPayload(area *Area) AreaPayload {
	return AreaPayload{AreaID: area.ID.String(), Name: area.Name}
}

func NewProductPayload(product *Product) ProductPayload {
	return ProductPayload{
		ID:         product.ID.String(),
		CategoryID: optionalID(product.CategoryID),
		Name:       product.Name,
		SKU:        product.SKU,
		Price:      product.Price,
		Quantity:   product.Quantity,
	}
}

func NewCategoryPayload(category *Category) CategoryPayload {
	return CategoryPayload{CategoryID: category.ID.String(), Name: category.Name}
}

// NewStaffPayload never includes the password hash.
func NewStaffPayload(staff *Staff) StaffPayload {
	active := staff.IsActive
	return StaffPayload{
		StaffID:  staff.ID.String(),
		Name:     staff.Name,
		Mobile:   staff.Mobile,
		Role:     staff.Role,
		AreaID:   optionalID(staff.AreaID),
		IsActive: &active,
	}
}
