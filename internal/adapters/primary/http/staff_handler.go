package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lorrc/distribution-backend/internal/adapters/primary/validation"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// StaffHandler handles HTTP requests for tenant staff management
type StaffHandler struct {
	staffService ports.StaffService
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService ports.StaffService, errorHandler *ErrorHandler, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "staff"),
	}
}

// RegisterRoutes sets up the routing for all staff endpoints.
func (h *StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListStaff)
	r.Post("/", h.HandleCreateStaff)

	r.Route("/{staffID}", func(r chi.Router) {
		r.Get("/", h.HandleGetStaff)
		r.Put("/", h.HandleUpdateStaff)
		r.Patch("/status", h.HandleUpdateStaffStatus)
		r.Delete("/", h.HandleDeleteStaff)
	})
}

// CreateStaffRequest defines the JSON body for adding a staff member.
type CreateStaffRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Mobile   string  `json:"mobile" validate:"required,max=20"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Role     string  `json:"role" validate:"required,oneof=admin manager salesman"`
	AreaID   *string `json:"areaId" validate:"omitempty,uuid"`
}

// UpdateStaffRequest defines the JSON body for editing a staff member.
type UpdateStaffRequest struct {
	Name   string  `json:"name" validate:"required,max=255"`
	Mobile string  `json:"mobile" validate:"required,max=20"`
	Role   string  `json:"role" validate:"required,oneof=admin manager salesman"`
	AreaID *string `json:"areaId" validate:"omitempty,uuid"`
}

// UpdateStaffStatusRequest toggles whether a staff member may log in.
type UpdateStaffStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// HandleListStaff handles GET /staff
func (h *StaffHandler) HandleListStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	staff, err := h.staffService.ListStaff(r.Context(), actor)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, mapAll(staff, toStaffDTO))
}

// HandleCreateStaff handles POST /staff
func (h *StaffHandler) HandleCreateStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateStaffRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	areaID, err := parseOptionalUUID("areaId", req.AreaID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	member, err := h.staffService.CreateStaff(r.Context(), actor, domain.StaffParams{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		AreaID:   areaID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("staff created", "staff_id", member.ID, "role", member.Role, "user_id", actor.UserID)

	WriteCreated(w, toStaffDTO(member))
}

// HandleGetStaff handles GET /staff/{staffID}
func (h *StaffHandler) HandleGetStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	staffID, err := parseIDParam(r, "staffID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	member, err := h.staffService.GetStaff(r.Context(), actor, staffID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toStaffDTO(member))
}

// HandleUpdateStaff handles PUT /staff/{staffID}
func (h *StaffHandler) HandleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	staffID, err := parseIDParam(r, "staffID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStaffRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	areaID, err := parseOptionalUUID("areaId", req.AreaID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	member, err := h.staffService.UpdateStaff(r.Context(), actor, staffID, ports.UpdateStaffParams{
		Name:   req.Name,
		Mobile: req.Mobile,
		Role:   domain.Role(req.Role),
		AreaID: areaID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toStaffDTO(member))
}

// HandleUpdateStaffStatus handles PATCH /staff/{staffID}/status
func (h *StaffHandler) HandleUpdateStaffStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	staffID, err := parseIDParam(r, "staffID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateStaffStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	member, err := h.staffService.UpdateStaffStatus(r.Context(), actor, staffID, *req.IsActive)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("staff status updated", "staff_id", staffID, "active", member.IsActive, "user_id", actor.UserID)

	WriteJSON(w, http.StatusOK, toStaffDTO(member))
}

// HandleDeleteStaff handles DELETE /staff/{staffID}
func (h *StaffHandler) HandleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	staffID, err := parseIDParam(r, "staffID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := h.staffService.DeleteStaff(r.Context(), actor, staffID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteNoContent(w)
}
