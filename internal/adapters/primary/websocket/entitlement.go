package websocket

import (
	"github.com/lorrc/distribution-backend/internal/core/domain"
)

// Entitled reports whether actor may receive the events of group.
func Entitled(actor domain.Actor, group domain.GroupKey) bool {
	id := group.ID()

	switch group.Kind() {
	case domain.GroupTenant:
		return actor.HasTenant() && id == actor.TenantID.String()
	case domain.GroupUser:
		return id == actor.UserID.String()
	case domain.GroupRole:
		return id == string(actor.Role)
	case domain.GroupSubArea:
		switch actor.Role {
		case domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager:
			return true
		}
		return actor.AreaID != nil && id == actor.AreaID.String()
	}
	return false
}
