package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// ProductService implements the product catalog.
type ProductService struct {
	productRepo  ports.ProductRepository
	categoryRepo ports.CategoryRepository
	authzSvc     ports.AuthorizationService
	publisher    ports.EventPublisher
}

var _ ports.ProductService = (*ProductService)(nil)

func NewProductService(
	productRepo ports.ProductRepository,
	categoryRepo ports.CategoryRepository,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		authzSvc:     authzSvc,
		publisher:    publisher,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, actor domain.Actor, params domain.ProductParams, quantity int) (*domain.Product, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermProductsWrite); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, actor.TenantID, params.CategoryID); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(params, quantity, actor.TenantID)
	if err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventProductCreated, created)
	return created, nil
}

func (s *ProductService) GetProduct(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Product, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermProductsRead); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, actor.TenantID, id)
}

func (s *ProductService) ListProducts(ctx context.Context, actor domain.Actor) ([]*domain.Product, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermProductsRead); err != nil {
		return nil, err
	}
	return s.productRepo.ListByTenant(ctx, actor.TenantID)
}

// UpdateProduct edits catalog fields. Stock is changed through StockService.
func (s *ProductService) UpdateProduct(ctx context.Context, actor domain.Actor, id uuid.UUID, params domain.ProductParams) (*domain.Product, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermProductsWrite); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, actor.TenantID, params.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(params); err != nil {
		return nil, err
	}

	updated, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventProductUpdated, updated)
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermProductsWrite); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventProductDeleted, product)
	return nil
}

func (s *ProductService) checkCategory(ctx context.Context, tenantID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.GetByID(ctx, tenantID, *categoryID)
	return err
}

func (s *ProductService) publish(ctx context.Context, eventType domain.EventType, product *domain.Product) {
	s.publisher.Publish(ctx,
		domain.EventScope{TenantID: product.TenantID},
		domain.NewEvent(eventType, domain.NewProductPayload(product)),
	)
}
