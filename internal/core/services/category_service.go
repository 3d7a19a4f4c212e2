package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// CategoryService implements product categories.
type CategoryService struct {
	categoryRepo ports.CategoryRepository
	authzSvc     ports.AuthorizationService
	publisher    ports.EventPublisher
}

var _ ports.CategoryService = (*CategoryService)(nil)

func NewCategoryService(
	categoryRepo ports.CategoryRepository,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		authzSvc:     authzSvc,
		publisher:    publisher,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermCategoriesWrite); err != nil {
		return nil, err
	}

	category, err := domain.NewCategory(name, actor.TenantID)
	if err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventCategoryCreated, created)
	return created, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, actor domain.Actor) ([]*domain.Category, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermCategoriesRead); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByTenant(ctx, actor.TenantID)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.Category, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermCategoriesWrite); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventCategoryUpdated, updated)
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermCategoriesWrite); err != nil {
		return err
	}

	category, err := s.categoryRepo.GetByID(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	s.publisher.Publish(ctx,
		domain.EventScope{TenantID: category.TenantID},
		domain.NewEvent(domain.EventCategoryDeleted, domain.CategoryPayload{CategoryID: category.ID.String()}),
	)
	return nil
}

func (s *CategoryService) publish(ctx context.Context, eventType domain.EventType, category *domain.Category) {
	s.publisher.Publish(ctx,
		domain.EventScope{TenantID: category.TenantID},
		domain.NewEvent(eventType, domain.NewCategoryPayload(category)),
	)
}
