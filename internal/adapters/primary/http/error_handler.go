package http

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
)

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error:   appErr.Message,
			Code:    appErr.Code,
			Details: appErr.Details,
		})
		return
	}

	// Check for ValidationErrors
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.logError(r, http.StatusUnprocessableEntity, err)
		h.writeValidationErrorResponse(w, validationErrs)
		return
	}

	// Map known domain errors to HTTP responses
	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Authentication & Authorization
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Invalid credentials",
			Code:  "INVALID_CREDENTIALS",
		}
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, ErrorResponse{
			Error: "This account has been disabled",
			Code:  "ACCOUNT_DISABLED",
		}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error: "You do not have permission to perform this action",
			Code:  "FORBIDDEN",
		}
	case errors.Is(err, apperrors.ErrTenantRequired):
		return http.StatusForbidden, ErrorResponse{
			Error: "This action requires a tenant account",
			Code:  "TENANT_REQUIRED",
		}

	// Not Found errors
	case errors.Is(err, apperrors.ErrStaffNotFound):
		return notFound("Staff member not found", "STAFF_NOT_FOUND")
	case errors.Is(err, apperrors.ErrOrderNotFound):
		return notFound("Order not found", "ORDER_NOT_FOUND")
	case errors.Is(err, apperrors.ErrProductNotFound):
		return notFound("Product not found", "PRODUCT_NOT_FOUND")
	case errors.Is(err, apperrors.ErrShopNotFound):
		return notFound("Shop not found", "SHOP_NOT_FOUND")
	case errors.Is(err, apperrors.ErrAreaNotFound):
		return notFound("Area not found", "AREA_NOT_FOUND")
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		return notFound("Category not found", "CATEGORY_NOT_FOUND")
	case errors.Is(err, apperrors.ErrNotFound):
		return notFound("Resource not found", "NOT_FOUND")

	// Conflict errors
	case errors.Is(err, apperrors.ErrStaffExists):
		return http.StatusConflict, ErrorResponse{
			Error: "A staff member with this mobile number already exists",
			Code:  "STAFF_EXISTS",
		}
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, ErrorResponse{
			Error: "Resource conflict",
			Code:  "CONFLICT",
		}

	// Validation errors
	case errors.Is(err, apperrors.ErrNameRequired),
		errors.Is(err, apperrors.ErrNameTooLong),
		errors.Is(err, apperrors.ErrMobileRequired),
		errors.Is(err, apperrors.ErrPasswordTooWeak),
		errors.Is(err, apperrors.ErrPasswordRequired),
		errors.Is(err, apperrors.ErrInvalidRole),
		errors.Is(err, apperrors.ErrInvalidPrice),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrInvalidStockOp),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrOrderItemsRequired),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		}

	// Business rule violations
	case errors.Is(err, apperrors.ErrInvalidStatusTransition):
		return http.StatusBadRequest, ErrorResponse{
			Error: "Invalid status transition",
			Code:  "INVALID_STATUS_TRANSITION",
		}
	case errors.Is(err, apperrors.ErrInsufficientStock):
		return http.StatusConflict, ErrorResponse{
			Error: "Insufficient stock",
			Code:  "INSUFFICIENT_STOCK",
		}
	case errors.Is(err, apperrors.ErrOrderNotDeletable):
		return http.StatusConflict, ErrorResponse{
			Error: "Only pending or cancelled orders can be deleted",
			Code:  "ORDER_NOT_DELETABLE",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

func notFound(message, code string) (int, ErrorResponse) {
	return http.StatusNotFound, ErrorResponse{Error: message, Code: code}
}

// logError logs at a level matching the status. The request identifiers
// come from the request context.
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error) {
	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	h.logger.LogAttrs(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status_code", statusCode),
		slog.String("error", err.Error()),
	)
}

func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	WriteJSON(w, statusCode, response)
}

func (h *ErrorHandler) writeValidationErrorResponse(w http.ResponseWriter, errs *apperrors.ValidationErrors) {
	WriteJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   "VALIDATION_ERROR",
		Fields: errs.Errors,
	})
}
