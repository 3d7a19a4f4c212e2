package domain

import (
	"time"

	"github.com/google/uuid"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderDelivered, OrderCancelled},
	OrderDelivered: {},
	OrderCancelled: {},
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// OrderItem is one order line. UnitPrice is in minor currency units.
type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice int64
}

// Order is a shop's purchase order taken by a salesman.
type Order struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ShopID      uuid.UUID
	AreaID      *uuid.UUID
	CreatedBy   uuid.UUID
	Status      OrderStatus
	Items       []OrderItem
	TotalAmount int64
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// OrderParams holds the input needed to create an order.
type OrderParams struct {
	TenantID  uuid.UUID
	ShopID    uuid.UUID
	AreaID    *uuid.UUID
	CreatedBy uuid.UUID
	Items     []OrderItem
}

// NewOrder validates params and returns a pending order.
func NewOrder(params OrderParams) (*Order, error) {
	if params.TenantID == uuid.Nil {
		return nil, apperrors.ErrTenantRequired
	}
	if len(params.Items) == 0 {
		return nil, apperrors.ErrOrderItemsRequired
	}

	var total int64
	for _, item := range params.Items {
		if item.Quantity <= 0 {
			return nil, apperrors.ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return nil, apperrors.ErrInvalidPrice
		}
		total += item.UnitPrice * int64(item.Quantity)
	}

	return &Order{
		ID:          uuid.New(),
		TenantID:    params.TenantID,
		ShopID:      params.ShopID,
		AreaID:      params.AreaID,
		CreatedBy:   params.CreatedBy,
		Status:      OrderPending,
		Items:       params.Items,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// UpdateStatus moves the order to a new status, enforcing allowed transitions.
func (o *Order) UpdateStatus(newStatus OrderStatus) error {
	if !newStatus.IsValid() {
		return apperrors.ErrInvalidStatus
	}

	for _, s := range orderTransitions[o.Status] {
		if s == newStatus {
			o.Status = newStatus
			now := time.Now().UTC()
			o.UpdatedAt = &now
			return nil
		}
	}

	return apperrors.ErrInvalidStatusTransition
}

// HoldsStock reports whether the order's items are currently deducted from stock.
func (o *Order) HoldsStock() bool {
	return o.Status != OrderCancelled
}

// Deletable reports whether the order may still be removed.
func (o *Order) Deletable() bool {
	return o.Status == OrderPending || o.Status == OrderCancelled
}
