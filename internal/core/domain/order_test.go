package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status domain.OrderStatus
		want   bool
	}{
		{"PENDING is valid", domain.OrderPending, true},
		{"CONFIRMED is valid", domain.OrderConfirmed, true},
		{"DELIVERED is valid", domain.OrderDelivered, true},
		{"CANCELLED is valid", domain.OrderCancelled, true},
		{"empty is invalid", domain.OrderStatus(""), false},
		{"lowercase is invalid", domain.OrderStatus("pending"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsValid())
		})
	}
}

func TestNewOrder(t *testing.T) {
	tenantID := uuid.New()
	item := domain.OrderItem{ProductID: uuid.New(), Quantity: 3, UnitPrice: 250}

	tests := []struct {
		name    string
		params  domain.OrderParams
		wantErr error
	}{
		{
			name:   "valid order",
			params: domain.OrderParams{TenantID: tenantID, ShopID: uuid.New(), Items: []domain.OrderItem{item}},
		},
		{
			name:    "missing tenant",
			params:  domain.OrderParams{ShopID: uuid.New(), Items: []domain.OrderItem{item}},
			wantErr: apperrors.ErrTenantRequired,
		},
		{
			name:    "no items",
			params:  domain.OrderParams{TenantID: tenantID, ShopID: uuid.New()},
			wantErr: apperrors.ErrOrderItemsRequired,
		},
		{
			name: "zero quantity",
			params: domain.OrderParams{TenantID: tenantID, ShopID: uuid.New(), Items: []domain.OrderItem{
				{ProductID: uuid.New(), Quantity: 0, UnitPrice: 10},
			}},
			wantErr: apperrors.ErrInvalidQuantity,
		},
		{
			name: "negative price",
			params: domain.OrderParams{TenantID: tenantID, ShopID: uuid.New(), Items: []domain.OrderItem{
				{ProductID: uuid.New(), Quantity: 1, UnitPrice: -1},
			}},
			wantErr: apperrors.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := domain.NewOrder(tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, order.ID)
			assert.Equal(t, domain.OrderPending, order.Status)
			assert.Equal(t, int64(750), order.TotalAmount)
		})
	}
}

func TestOrder_UpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		from        domain.OrderStatus
		to          domain.OrderStatus
		expectError bool
	}{
		{"PENDING to CONFIRMED", domain.OrderPending, domain.OrderConfirmed, false},
		{"PENDING to CANCELLED", domain.OrderPending, domain.OrderCancelled, false},
		{"PENDING to DELIVERED", domain.OrderPending, domain.OrderDelivered, true},
		{"CONFIRMED to DELIVERED", domain.OrderConfirmed, domain.OrderDelivered, false},
		{"CONFIRMED to CANCELLED", domain.OrderConfirmed, domain.OrderCancelled, false},
		{"DELIVERED to CANCELLED", domain.OrderDelivered, domain.OrderCancelled, true},
		{"CANCELLED to PENDING", domain.OrderCancelled, domain.OrderPending, true},
		{"PENDING to INVALID", domain.OrderPending, domain.OrderStatus("LOST"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &domain.Order{ID: uuid.New(), Status: tt.from}

			err := order.UpdateStatus(tt.to)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.from, order.Status)
				assert.Nil(t, order.UpdatedAt)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, order.Status)
				assert.NotNil(t, order.UpdatedAt)
			}
		})
	}
}

func TestOrder_DeletableAndHoldsStock(t *testing.T) {
	order := &domain.Order{Status: domain.OrderPending}
	assert.True(t, order.Deletable())
	assert.True(t, order.HoldsStock())

	order.Status = domain.OrderConfirmed
	assert.False(t, order.Deletable())
	assert.True(t, order.HoldsStock())

	order.Status = domain.OrderCancelled
	assert.True(t, order.Deletable())
	assert.False(t, order.HoldsStock())
}
