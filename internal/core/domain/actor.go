package domain

import "github.com/google/uuid"

// Role is a staff role. It drives both permissions and the role:<id> group.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSalesman   Role = "salesman"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleSalesman:
		return true
	}
	return false
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID   uuid.UUID
	TenantID uuid.UUID // uuid.Nil for platform level accounts
	Role     Role
	AreaID   *uuid.UUID
}

// HasTenant reports whether the actor is bound to a tenant.
func (a Actor) HasTenant() bool {
	return a.TenantID != uuid.Nil
}

// Owns reports whether a tenant scoped record belongs to the actor's tenant.
func (a Actor) Owns(tenantID uuid.UUID) bool {
	return a.HasTenant() && a.TenantID == tenantID
}
