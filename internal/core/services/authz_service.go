package services

import (
	"context"
	"slices"

	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// Permission codes checked by the services.
const (
	PermOrdersCreate     = "orders:create"
	PermOrdersRead       = "orders:read"
	PermOrdersReadAll    = "orders:read:all"
	PermOrdersUpdate     = "orders:update"
	PermOrdersDelete     = "orders:delete"
	PermStockAdjust      = "stock:adjust"
	PermProductsRead     = "products:read"
	PermProductsWrite    = "products:write"
	PermCategoriesRead   = "categories:read"
	PermCategoriesWrite  = "categories:write"
	PermShopsRead        = "shops:read"
	PermShopsWrite       = "shops:write"
	PermAreasRead        = "areas:read"
	PermAreasWrite       = "areas:write"
	PermAreasWriteGlobal = "areas:write:global"
	PermStaffRead        = "staff:read"
	PermStaffWrite       = "staff:write"
)

var salesmanPermissions = []string{
	PermOrdersCreate, PermOrdersRead,
	PermProductsRead, PermCategoriesRead,
	PermShopsRead, PermShopsWrite,
	PermAreasRead,
}

var managerPermissions = append(slices.Clone(salesmanPermissions),
	PermOrdersReadAll, PermOrdersUpdate, PermOrdersDelete,
	PermStockAdjust,
	PermProductsWrite, PermCategoriesWrite,
	PermStaffRead,
)

var adminPermissions = append(slices.Clone(managerPermissions),
	PermAreasWrite, PermStaffWrite,
)

var rolePermissions = map[domain.Role][]string{
	domain.RoleSalesman:   salesmanPermissions,
	domain.RoleManager:    managerPermissions,
	domain.RoleAdmin:      adminPermissions,
	domain.RoleSuperAdmin: append(slices.Clone(adminPermissions), PermAreasWriteGlobal),
}

// AuthorizationService implements role based access control. Roles and their
// permissions are fixed at build time.
type AuthorizationService struct{}

// Ensure implementation matches the interface.
var _ ports.AuthorizationService = (*AuthorizationService)(nil)

// NewAuthorizationService creates a new service for authorization logic.
func NewAuthorizationService() ports.AuthorizationService {
	return &AuthorizationService{}
}

// Can checks if an actor has a specific permission.
func (s *AuthorizationService) Can(_ context.Context, actor domain.Actor, permission string) (bool, error) {
	return slices.Contains(rolePermissions[actor.Role], permission), nil
}

// GetPermissions returns all permissions for an actor.
func (s *AuthorizationService) GetPermissions(_ context.Context, actor domain.Actor) ([]string, error) {
	permissions := rolePermissions[actor.Role]
	if permissions == nil {
		return []string{}, nil
	}
	return slices.Clone(permissions), nil
}
