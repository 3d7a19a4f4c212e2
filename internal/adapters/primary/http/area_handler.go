package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// AreaHandler handles HTTP requests for sales areas
type AreaHandler struct {
	areaService  ports.AreaService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAreaHandler creates a new area handler
func NewAreaHandler(areaService ports.AreaService, errorHandler *ErrorHandler, logger *slog.Logger) *AreaHandler {
	return &AreaHandler{
		areaService:  areaService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "area"),
	}
}

// RegisterRoutes sets up the routing for all area endpoints.
func (h *AreaHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListAreas)
	r.Post("/", h.HandleCreateArea)
	r.Put("/{areaID}", h.HandleUpdateArea)
	r.Delete("/{areaID}", h.HandleDeleteArea)
}

// HandleListAreas handles GET /areas
func (h *AreaHandler) HandleListAreas(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	areas, err := h.areaService.ListAreas(r.Context(), actor)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapAll(areas, toAreaDTO))
}

// HandleCreateArea handles POST /areas. Platform accounts create global areas.
func (h *AreaHandler) HandleCreateArea(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[NameRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	area, err := h.areaService.CreateArea(r.Context(), actor, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("area created", "area_id", area.ID, "global", area.IsGlobal(), "user_id", actor.UserID)

	WriteCreated(w, toAreaDTO(area))
}

// HandleUpdateArea handles PUT /areas/{areaID}
func (h *AreaHandler) HandleUpdateArea(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	areaID, err := parseIDParam(r, "areaID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[NameRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	area, err := h.areaService.UpdateArea(r.Context(), actor, areaID, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toAreaDTO(area))
}

// HandleDeleteArea handles DELETE /areas/{areaID}
func (h *AreaHandler) HandleDeleteArea(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	areaID, err := parseIDParam(r, "areaID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.areaService.DeleteArea(r.Context(), actor, areaID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
