package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_AdjustStock(t *testing.T) {
	tests := []struct {
		name     string
		action   domain.StockAction
		quantity int
		want     int
		wantErr  error
	}{
		{"add", domain.StockAdd, 5, 15, nil},
		{"deduct", domain.StockDeduct, 4, 6, nil},
		{"deduct everything", domain.StockDeduct, 10, 0, nil},
		{"deduct too much", domain.StockDeduct, 11, 10, apperrors.ErrInsufficientStock},
		{"zero quantity", domain.StockAdd, 0, 10, apperrors.ErrInvalidQuantity},
		{"unknown action", domain.StockAction("set"), 1, 10, apperrors.ErrInvalidStockOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := &domain.Product{ID: uuid.New(), Quantity: 10}

			err := product.AdjustStock(tt.action, tt.quantity)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, product.Quantity)
		})
	}
}

func TestNewProduct(t *testing.T) {
	tenantID := uuid.New()

	product, err := domain.NewProduct(domain.ProductParams{Name: "  Soap  ", SKU: "SP-1", Price: 4500}, 20, tenantID)
	require.NoError(t, err)
	assert.Equal(t, "Soap", product.Name)
	assert.Equal(t, 20, product.Quantity)
	assert.Nil(t, product.UpdatedAt)

	_, err = domain.NewProduct(domain.ProductParams{Name: "Soap", Price: -1}, 0, tenantID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	_, err = domain.NewProduct(domain.ProductParams{Name: "Soap"}, -1, tenantID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidQuantity)

	_, err = domain.NewProduct(domain.ProductParams{Name: "Soap"}, 1, uuid.Nil)
	assert.ErrorIs(t, err, apperrors.ErrTenantRequired)
}

func TestNewArea(t *testing.T) {
	global, err := domain.NewArea("North", nil)
	require.NoError(t, err)
	assert.True(t, global.IsGlobal())

	tenantID := uuid.New()
	scoped, err := domain.NewArea("South", &tenantID)
	require.NoError(t, err)
	assert.False(t, scoped.IsGlobal())

	_, err = domain.NewArea("   ", nil)
	assert.ErrorIs(t, err, apperrors.ErrNameRequired)

	_, err = domain.NewArea(strings.Repeat("a", 256), nil)
	assert.ErrorIs(t, err, apperrors.ErrNameTooLong)
}

func TestShop_Update(t *testing.T) {
	tenantID := uuid.New()
	shop, err := domain.NewShop(domain.ShopParams{Name: "Corner Store"}, tenantID)
	require.NoError(t, err)
	assert.Nil(t, shop.AreaID)

	areaID := uuid.New()
	require.NoError(t, shop.Update(domain.ShopParams{Name: "Corner Store 2", AreaID: &areaID}))
	assert.Equal(t, "Corner Store 2", shop.Name)
	assert.Equal(t, &areaID, shop.AreaID)
	assert.NotNil(t, shop.UpdatedAt)

	assert.ErrorIs(t, shop.Update(domain.ShopParams{}), apperrors.ErrNameRequired)
}
