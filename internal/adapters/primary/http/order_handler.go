package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/samber/lo"
)

const maxOrdersPerPage = 200

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService ports.OrderService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService ports.OrderService, errorHandler *ErrorHandler, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "order"),
	}
}

// RegisterRoutes sets up the routing for all order endpoints.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListOrders)
	r.Post("/", h.HandleCreateOrder)

	r.Route("/{orderID}", func(r chi.Router) {
		r.Get("/", h.HandleGetOrder)
		r.Patch("/status", h.HandleUpdateOrderStatus)
		r.Delete("/", h.HandleDeleteOrder)
	})
}

// --- Request DTOs ---

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest defines the expected JSON body for placing an order
type CreateOrderRequest struct {
	ShopID string             `json:"shopId" validate:"required,uuid"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest defines the expected JSON body for status updates
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED DELIVERED CANCELLED"`
}

// --- Handlers ---

// HandleListOrders handles GET /orders
func (h *OrderHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	pagination := validation.ParsePagination(r, maxOrdersPerPage)

	areaID, err := validation.ParseUUIDQueryParam(r, "areaId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.ListOrdersParams{
		AreaID: areaID,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	}
	if status := validation.ParseStringQueryParam(r, "status"); status != nil {
		s := domain.OrderStatus(*status)
		params.Status = &s
	}

	page, err := h.orderService.ListOrders(r.Context(), actor, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WritePage(w, mapAll(page.Orders, toOrderDTO), page.Limit, page.Offset, page.HasMore)
}

// HandleCreateOrder handles POST /orders
func (h *OrderHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateOrderRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := ports.CreateOrderParams{
		ShopID: uuid.MustParse(req.ShopID),
		Items: lo.Map(req.Items, func(item OrderItemRequest, _ int) ports.OrderItemInput {
			return ports.OrderItemInput{ProductID: uuid.MustParse(item.ProductID), Quantity: item.Quantity}
		}),
	}

	order, err := h.orderService.CreateOrder(r.Context(), actor, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("order created",
		"order_id", order.ID,
		"shop_id", order.ShopID,
		"user_id", actor.UserID,
	)

	WriteCreated(w, toOrderDTO(order))
}

// HandleGetOrder handles GET /orders/{orderID}
func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toOrderDTO(order))
}

// HandleUpdateOrderStatus handles PATCH /orders/{orderID}/status
func (h *OrderHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateOrderStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), actor, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("order status updated",
		"order_id", orderID,
		"new_status", req.Status,
		"user_id", actor.UserID,
	)

	WriteJSON(w, http.StatusOK, toOrderDTO(order))
}

// HandleDeleteOrder handles DELETE /orders/{orderID}
func (h *OrderHandler) HandleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	orderID, err := parseIDParam(r, "orderID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), actor, orderID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("order deleted", "order_id", orderID, "user_id", actor.UserID)

	WriteNoContent(w)
}
