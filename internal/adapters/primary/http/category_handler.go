package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// CategoryHandler handles HTTP requests for product categories
type CategoryHandler struct {
	categoryService ports.CategoryService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService ports.CategoryService, errorHandler *ErrorHandler, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "category"),
	}
}

// RegisterRoutes sets up the routing for all category endpoints.
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListCategories)
	r.Post("/", h.HandleCreateCategory)
	r.Put("/{categoryID}", h.HandleUpdateCategory)
	r.Delete("/{categoryID}", h.HandleDeleteCategory)
}

// NameRequest is the body for entities that only carry a name.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// HandleListCategories handles GET /categories
func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), actor)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapAll(categories, toCategoryDTO))
}

// HandleCreateCategory handles POST /categories
func (h *CategoryHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[NameRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), actor, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteCreated(w, toCategoryDTO(category))
}

// HandleUpdateCategory handles PUT /categories/{categoryID}
func (h *CategoryHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	categoryID, err := parseIDParam(r, "categoryID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[NameRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), actor, categoryID, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toCategoryDTO(category))
}

// HandleDeleteCategory handles DELETE /categories/{categoryID}
func (h *CategoryHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	categoryID, err := parseIDParam(r, "categoryID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), actor, categoryID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
