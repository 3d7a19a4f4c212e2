package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// ShopHandler handles HTTP requests for retail shops
type ShopHandler struct {
	shopService  ports.ShopService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService ports.ShopService, errorHandler *ErrorHandler, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		shopService:  shopService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "shop"),
	}
}

// RegisterRoutes sets up the routing for all shop endpoints.
func (h *ShopHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListShops)
	r.Post("/", h.HandleCreateShop)

	r.Route("/{shopID}", func(r chi.Router) {
		r.Get("/", h.HandleGetShop)
		r.Put("/", h.HandleUpdateShop)
		r.Delete("/", h.HandleDeleteShop)
	})
}

// ShopRequest defines the JSON body for creating or updating a shop.
type ShopRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	OwnerName string  `json:"ownerName" validate:"max=255"`
	Mobile    string  `json:"mobile" validate:"omitempty,max=20"`
	Address   string  `json:"address" validate:"max=1000"`
	AreaID    *string `json:"areaId" validate:"omitempty,uuid"`
}

func (req *ShopRequest) params() (domain.ShopParams, error) {
	areaID, err := parseOptionalUUID("areaId", req.AreaID)
	if err != nil {
		return domain.ShopParams{}, err
	}
	return domain.ShopParams{
		Name:      req.Name,
		OwnerName: req.OwnerName,
		Mobile:    req.Mobile,
		Address:   req.Address,
		AreaID:    areaID,
	}, nil
}

// HandleListShops handles GET /shops?areaId=
func (h *ShopHandler) HandleListShops(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	areaID, err := validation.ParseUUIDQueryParam(r, "areaId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	shops, err := h.shopService.ListShops(r.Context(), actor, areaID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapAll(shops, toShopDTO))
}

// HandleCreateShop handles POST /shops
func (h *ShopHandler) HandleCreateShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[ShopRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	shop, err := h.shopService.CreateShop(r.Context(), actor, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("shop created", "shop_id", shop.ID, "user_id", actor.UserID)

	WriteCreated(w, toShopDTO(shop))
}

// HandleGetShop handles GET /shops/{shopID}
func (h *ShopHandler) HandleGetShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	shopID, err := parseIDParam(r, "shopID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	shop, err := h.shopService.GetShop(r.Context(), actor, shopID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toShopDTO(shop))
}

// HandleUpdateShop handles PUT /shops/{shopID}
func (h *ShopHandler) HandleUpdateShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	shopID, err := parseIDParam(r, "shopID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[ShopRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	shop, err := h.shopService.UpdateShop(r.Context(), actor, shopID, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toShopDTO(shop))
}

// HandleDeleteShop handles DELETE /shops/{shopID}
func (h *ShopHandler) HandleDeleteShop(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	shopID, err := parseIDParam(r, "shopID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.shopService.DeleteShop(r.Context(), actor, shopID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
