package services

import (
	"context"
	"testing"

	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationService_Can(t *testing.T) {
	svc := NewAuthorizationService()
	ctx := context.Background()

	tests := []struct {
		role       domain.Role
		permission string
		want       bool
	}{
		{domain.RoleSalesman, PermOrdersCreate, true},
		{domain.RoleSalesman, PermOrdersUpdate, false},
		{domain.RoleSalesman, PermStockAdjust, false},
		{domain.RoleManager, PermStockAdjust, true},
		{domain.RoleManager, PermStaffWrite, false},
		{domain.RoleAdmin, PermStaffWrite, true},
		{domain.RoleAdmin, PermAreasWriteGlobal, false},
		{domain.RoleSuperAdmin, PermAreasWriteGlobal, true},
		{domain.Role("guest"), PermOrdersRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.permission, func(t *testing.T) {
			ok, err := svc.Can(ctx, domain.Actor{Role: tt.role}, tt.permission)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestAuthorizationService_GetPermissions(t *testing.T) {
	svc := NewAuthorizationService()

	permissions, err := svc.GetPermissions(context.Background(), domain.Actor{Role: domain.RoleSalesman})
	require.NoError(t, err)
	assert.Contains(t, permissions, PermOrdersCreate)

	// Callers get a copy.
	permissions[0] = "tampered"
	again, _ := svc.GetPermissions(context.Background(), domain.Actor{Role: domain.RoleSalesman})
	assert.NotContains(t, again, "tampered")

	permissions, err = svc.GetPermissions(context.Background(), domain.Actor{Role: domain.Role("guest")})
	require.NoError(t, err)
	assert.Empty(t, permissions)
}
