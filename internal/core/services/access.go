package services

import (
	"context"

	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

func authorize(ctx context.Context, authz ports.AuthorizationService, actor domain.Actor, permission string) error {
	ok, err := authz.Can(ctx, actor, permission)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}
	return nil
}

// authorizeTenant additionally requires the actor to belong to a tenant.
func authorizeTenant(ctx context.Context, authz ports.AuthorizationService, actor domain.Actor, permission string) error {
	if err := authorize(ctx, authz, actor, permission); err != nil {
		return err
	}
	if !actor.HasTenant() {
		return apperrors.ErrTenantRequired
	}
	return nil
}
