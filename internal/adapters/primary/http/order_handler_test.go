package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/mocks"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

func newOrderRouter(svc *mocks.MockOrderService) chi.Router {
	handler := NewOrderHandler(svc, NewErrorHandler(discardLogger()), discardLogger())
	router := chi.NewRouter()
	router.Route("/orders", handler.RegisterRoutes)
	return router
}

func sampleOrder(actor domain.Actor) *domain.Order {
	return &domain.Order{
		ID:        uuid.New(),
		TenantID:  actor.TenantID,
		ShopID:    uuid.New(),
		CreatedBy: actor.UserID,
		Status:    domain.OrderPending,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: 150},
		},
		TotalAmount: 300,
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_Create(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleSalesman}
	order := sampleOrder(actor)
	productID := order.Items[0].ProductID

	svc := mocks.NewMockOrderService()
	svc.On("CreateOrder", mock.Anything, actor, ports.CreateOrderParams{
		ShopID: order.ShopID,
		Items:  []ports.OrderItemInput{{ProductID: productID, Quantity: 2}},
	}).Return(order, nil)

	body := `{"shopId":"` + order.ShopID.String() + `","items":[{"productId":"` + productID.String() + `","quantity":2}]}`
	req := withActor(httptest.NewRequest(stdhttp.MethodPost, "/orders", strings.NewReader(body)), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusCreated, rec.Code)

	var dto OrderDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, order.ID.String(), dto.ID)
	assert.Equal(t, "PENDING", dto.Status)
	assert.EqualValues(t, 300, dto.TotalAmount)
	assert.Equal(t, "2024-05-01T10:00:00Z", dto.CreatedAt)
	svc.AssertExpectations(t)
}

func TestOrderHandler_CreateValidation(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleSalesman}
	svc := mocks.NewMockOrderService()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"shopId":`, stdhttp.StatusBadRequest},
		{"unknown field", `{"shopId":"` + uuid.NewString() + `","items":[],"extra":1}`, stdhttp.StatusBadRequest},
		{"no items", `{"shopId":"` + uuid.NewString() + `","items":[]}`, stdhttp.StatusUnprocessableEntity},
		{"bad quantity", `{"shopId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":0}]}`, stdhttp.StatusUnprocessableEntity},
		{"bad shop id", `{"shopId":"nope","items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`, stdhttp.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withActor(httptest.NewRequest(stdhttp.MethodPost, "/orders", strings.NewReader(tt.body)), actor)
			rec := httptest.NewRecorder()
			newOrderRouter(svc).ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_CreateInsufficientStock(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleSalesman}

	svc := mocks.NewMockOrderService()
	svc.On("CreateOrder", mock.Anything, actor, mock.Anything).Return(nil, apperrors.ErrInsufficientStock)

	body := `{"shopId":"` + uuid.NewString() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":5}]}`
	req := withActor(httptest.NewRequest(stdhttp.MethodPost, "/orders", strings.NewReader(body)), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "INSUFFICIENT_STOCK")
}

func TestOrderHandler_List(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleManager}
	areaID := uuid.New()
	status := domain.OrderConfirmed

	svc := mocks.NewMockOrderService()
	svc.On("ListOrders", mock.Anything, actor, ports.ListOrdersParams{
		Status: &status,
		AreaID: &areaID,
		Limit:  200,
		Offset: 10,
	}).Return(&ports.OrderPage{
		Orders:  []*domain.Order{sampleOrder(actor)},
		Limit:   200,
		Offset:  10,
		HasMore: true,
	}, nil)

	target := "/orders?status=CONFIRMED&areaId=" + areaID.String() + "&limit=5000&offset=10"
	req := withActor(httptest.NewRequest(stdhttp.MethodGet, target, nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)

	var body PaginatedResponse[OrderDTO]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	assert.Equal(t, PaginationMetadata{Limit: 200, Offset: 10, HasMore: true}, body.Pagination)
	svc.AssertExpectations(t)
}

func TestOrderHandler_ListEmptyPage(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleSalesman}

	svc := mocks.NewMockOrderService()
	svc.On("ListOrders", mock.Anything, actor, ports.ListOrdersParams{}).
		Return(&ports.OrderPage{Limit: 50}, nil)

	req := withActor(httptest.NewRequest(stdhttp.MethodGet, "/orders", nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"limit":50,"offset":0,"hasMore":false}}`, rec.Body.String())
}

func TestOrderHandler_ListBadArea(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleManager}
	svc := mocks.NewMockOrderService()

	req := withActor(httptest.NewRequest(stdhttp.MethodGet, "/orders?areaId=x", nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetNotFound(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleManager}
	id := uuid.New()

	svc := mocks.NewMockOrderService()
	svc.On("GetOrder", mock.Anything, actor, id).Return(nil, apperrors.ErrOrderNotFound)

	req := withActor(httptest.NewRequest(stdhttp.MethodGet, "/orders/"+id.String(), nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleManager}
	order := sampleOrder(actor)
	order.Status = domain.OrderConfirmed

	svc := mocks.NewMockOrderService()
	svc.On("UpdateOrderStatus", mock.Anything, actor, order.ID, domain.OrderConfirmed).Return(order, nil)

	req := withActor(httptest.NewRequest(stdhttp.MethodPatch, "/orders/"+order.ID.String()+"/status",
		strings.NewReader(`{"status":"CONFIRMED"}`)), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"CONFIRMED"`)
	svc.AssertExpectations(t)
}

func TestOrderHandler_UpdateStatusRejectsUnknown(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleManager}
	svc := mocks.NewMockOrderService()

	req := withActor(httptest.NewRequest(stdhttp.MethodPatch, "/orders/"+uuid.NewString()+"/status",
		strings.NewReader(`{"status":"SHIPPED"}`)), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
}

func TestOrderHandler_Delete(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.New()

	svc := mocks.NewMockOrderService()
	svc.On("DeleteOrder", mock.Anything, actor, id).Return(nil)

	req := withActor(httptest.NewRequest(stdhttp.MethodDelete, "/orders/"+id.String(), nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestOrderHandler_BadID(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleAdmin}

	req := withActor(httptest.NewRequest(stdhttp.MethodGet, "/orders/not-a-uuid", nil), actor)
	rec := httptest.NewRecorder()
	newOrderRouter(mocks.NewMockOrderService()).ServeHTTP(rec, req)

	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
}
