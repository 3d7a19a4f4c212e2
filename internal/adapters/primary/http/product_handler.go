package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// ProductHandler handles HTTP requests for products and their stock
type ProductHandler struct {
	productService ports.ProductService
	stockService   ports.StockService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	productService ports.ProductService,
	stockService ports.StockService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		stockService:   stockService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "product"),
	}
}

// RegisterRoutes sets up the routing for all product endpoints.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListProducts)
	r.Post("/", h.HandleCreateProduct)

	r.Route("/{productID}", func(r chi.Router) {
		r.Get("/", h.HandleGetProduct)
		r.Put("/", h.HandleUpdateProduct)
		r.Delete("/", h.HandleDeleteProduct)
		r.Post("/stock", h.HandleAdjustStock)
	})
}

// ProductRequest defines the JSON body for creating or updating a product.
type ProductRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	SKU        string  `json:"sku" validate:"max=64"`
	Price      int64   `json:"price" validate:"gte=0"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
	Quantity   int     `json:"quantity" validate:"gte=0"`
}

func (req *ProductRequest) params() (domain.ProductParams, error) {
	categoryID, err := parseOptionalUUID("categoryId", req.CategoryID)
	if err != nil {
		return domain.ProductParams{}, err
	}
	return domain.ProductParams{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		CategoryID: categoryID,
	}, nil
}

// AdjustStockRequest defines the JSON body for a manual stock movement.
type AdjustStockRequest struct {
	Action   string `json:"action" validate:"required,oneof=add deduct"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// HandleListProducts handles GET /products
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	products, err := h.productService.ListProducts(r.Context(), actor)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapAll(products, toProductDTO))
}

// HandleCreateProduct handles POST /products
func (h *ProductHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[ProductRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), actor, params, req.Quantity)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "user_id", actor.UserID)

	WriteCreated(w, toProductDTO(product))
}

// HandleGetProduct handles GET /products/{productID}
func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	product, err := h.productService.GetProduct(r.Context(), actor, productID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toProductDTO(product))
}

// HandleUpdateProduct handles PUT /products/{productID}. Quantity is ignored;
// stock moves through /stock.
func (h *ProductHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[ProductRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params, err := req.params()
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), actor, productID, params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toProductDTO(product))
}

// HandleDeleteProduct handles DELETE /products/{productID}
func (h *ProductHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), actor, productID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}

// HandleAdjustStock handles POST /products/{productID}/stock
func (h *ProductHandler) HandleAdjustStock(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[AdjustStockRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	product, err := h.stockService.AdjustStock(r.Context(), actor, productID, domain.StockAction(req.Action), req.Quantity)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("stock adjusted",
		"product_id", productID,
		"action", req.Action,
		"quantity", req.Quantity,
		"user_id", actor.UserID,
	)

	WriteJSON(w, http.StatusOK, toProductDTO(product))
}
