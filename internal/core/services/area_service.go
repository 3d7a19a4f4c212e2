package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// AreaService manages sales areas. Platform accounts without a tenant
// manage the global areas every tenant can see.
type AreaService struct {
	areaRepo  ports.AreaRepository
	authzSvc  ports.AuthorizationService
	publisher ports.EventPublisher
}

var _ ports.AreaService = (*AreaService)(nil)

func NewAreaService(
	areaRepo ports.AreaRepository,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.AreaService {
	return &AreaService{
		areaRepo:  areaRepo,
		authzSvc:  authzSvc,
		publisher: publisher,
	}
}

// CreateArea creates a tenant area, or a global one when the actor has no tenant.
func (s *AreaService) CreateArea(ctx context.Context, actor domain.Actor, name string) (*domain.Area, error) {
	var tenantID *uuid.UUID
	if actor.HasTenant() {
		if err := authorize(ctx, s.authzSvc, actor, PermAreasWrite); err != nil {
			return nil, err
		}
		tenantID = &actor.TenantID
	} else if err := authorize(ctx, s.authzSvc, actor, PermAreasWriteGlobal); err != nil {
		return nil, err
	}

	area, err := domain.NewArea(name, tenantID)
	if err != nil {
		return nil, err
	}

	created, err := s.areaRepo.Create(ctx, area)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventAreaCreated, created, domain.NewAreaPayload(created))
	return created, nil
}

func (s *AreaService) ListAreas(ctx context.Context, actor domain.Actor) ([]*domain.Area, error) {
	if err := authorize(ctx, s.authzSvc, actor, PermAreasRead); err != nil {
		return nil, err
	}
	return s.areaRepo.ListVisible(ctx, actor.TenantID)
}

func (s *AreaService) UpdateArea(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.Area, error) {
	area, err := s.loadWritable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := area.Rename(name); err != nil {
		return nil, err
	}

	updated, err := s.areaRepo.Update(ctx, area)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventAreaUpdated, updated, domain.NewAreaPayload(updated))
	return updated, nil
}

func (s *AreaService) DeleteArea(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	area, err := s.loadWritable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.areaRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventAreaDeleted, area, domain.AreaPayload{AreaID: area.ID.String()})
	return nil
}

func (s *AreaService) loadWritable(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if area.IsGlobal() {
		return area, authorize(ctx, s.authzSvc, actor, PermAreasWriteGlobal)
	}
	if !actor.Owns(*area.TenantID) {
		return nil, apperrors.ErrAreaNotFound
	}
	return area, authorize(ctx, s.authzSvc, actor, PermAreasWrite)
}

func (s *AreaService) publish(ctx context.Context, eventType domain.EventType, area *domain.Area, payload domain.AreaPayload) {
	scope := domain.EventScope{Global: area.IsGlobal()}
	if !area.IsGlobal() {
		scope.TenantID = *area.TenantID
	}
	s.publisher.Publish(ctx, scope, domain.NewEvent(eventType, payload))
}
