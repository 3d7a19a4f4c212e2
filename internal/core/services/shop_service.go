package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// ShopService implements retail shop management. Shop events also reach the
// shop's sub-area group.
type ShopService struct {
	shopRepo  ports.ShopRepository
	areaRepo  ports.AreaRepository
	authzSvc  ports.AuthorizationService
	publisher ports.EventPublisher
}

var _ ports.ShopService = (*ShopService)(nil)

func NewShopService(
	shopRepo ports.ShopRepository,
	areaRepo ports.AreaRepository,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.ShopService {
	return &ShopService{
		shopRepo:  shopRepo,
		areaRepo:  areaRepo,
		authzSvc:  authzSvc,
		publisher: publisher,
	}
}

func (s *ShopService) CreateShop(ctx context.Context, actor domain.Actor, params domain.ShopParams) (*domain.Shop, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermShopsWrite); err != nil {
		return nil, err
	}
	if err := s.checkArea(ctx, actor, params.AreaID); err != nil {
		return nil, err
	}

	shop, err := domain.NewShop(params, actor.TenantID)
	if err != nil {
		return nil, err
	}

	created, err := s.shopRepo.Create(ctx, shop)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventShopCreated, created, domain.NewShopPayload(created))
	return created, nil
}

func (s *ShopService) GetShop(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Shop, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermShopsRead); err != nil {
		return nil, err
	}
	return s.shopRepo.GetByID(ctx, actor.TenantID, id)
}

// ListShops lists shops, defaulting a salesman to their own area.
func (s *ShopService) ListShops(ctx context.Context, actor domain.Actor, areaID *uuid.UUID) ([]*domain.Shop, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermShopsRead); err != nil {
		return nil, err
	}
	if areaID == nil && actor.Role == domain.RoleSalesman {
		areaID = actor.AreaID
	}
	return s.shopRepo.ListByTenant(ctx, actor.TenantID, areaID)
}

func (s *ShopService) UpdateShop(ctx context.Context, actor domain.Actor, id uuid.UUID, params domain.ShopParams) (*domain.Shop, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermShopsWrite); err != nil {
		return nil, err
	}
	if err := s.checkArea(ctx, actor, params.AreaID); err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !canServeArea(actor, shop.AreaID) {
		return nil, apperrors.ErrForbidden
	}

	if err := shop.Update(params); err != nil {
		return nil, err
	}

	updated, err := s.shopRepo.Update(ctx, shop)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventShopUpdated, updated, domain.NewShopPayload(updated))
	return updated, nil
}

func (s *ShopService) DeleteShop(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermShopsWrite); err != nil {
		return err
	}

	shop, err := s.shopRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if !canServeArea(actor, shop.AreaID) {
		return apperrors.ErrForbidden
	}
	if err := s.shopRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventShopDeleted, shop, domain.ShopPayload{ShopID: shop.ID.String()})
	return nil
}

// checkArea verifies the area is visible to the tenant and, for salesmen,
// that it is their own.
func (s *ShopService) checkArea(ctx context.Context, actor domain.Actor, areaID *uuid.UUID) error {
	if areaID == nil {
		return nil
	}
	if !canServeArea(actor, areaID) {
		return apperrors.ErrForbidden
	}
	area, err := s.areaRepo.GetByID(ctx, *areaID)
	if err != nil {
		return err
	}
	if !area.IsGlobal() && *area.TenantID != actor.TenantID {
		return apperrors.ErrAreaNotFound
	}
	return nil
}

func (s *ShopService) publish(ctx context.Context, eventType domain.EventType, shop *domain.Shop, payload domain.ShopPayload) {
	s.publisher.Publish(ctx,
		domain.EventScope{TenantID: shop.TenantID, AreaID: domain.AreaScope(shop.AreaID)},
		domain.NewEvent(eventType, payload),
	)
}
