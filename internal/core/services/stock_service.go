package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// StockService implements manual stock movements.
type StockService struct {
	productRepo ports.ProductRepository
	txManager   ports.TransactionManager
	authzSvc    ports.AuthorizationService
	publisher   ports.EventPublisher
}

var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service
func NewStockService(
	productRepo ports.ProductRepository,
	txManager ports.TransactionManager,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.StockService {
	return &StockService{
		productRepo: productRepo,
		txManager:   txManager,
		authzSvc:    authzSvc,
		publisher:   publisher,
	}
}

// AdjustStock adds or deducts stock and announces the new quantity.
func (s *StockService) AdjustStock(ctx context.Context, actor domain.Actor, productID uuid.UUID, action domain.StockAction, quantity int) (*domain.Product, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermStockAdjust); err != nil {
		return nil, err
	}

	var product *domain.Product
	err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = applyStock(ctx, s.productRepo, actor.TenantID, productID, action, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishStock(ctx, s.publisher, product, action)
	return product, nil
}

// applyStock locks the product row and applies one movement. It must run
// inside a transaction.
func applyStock(ctx context.Context, repo ports.ProductRepository, tenantID, productID uuid.UUID, action domain.StockAction, quantity int) (*domain.Product, error) {
	product, err := repo.GetForUpdate(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.AdjustStock(action, quantity); err != nil {
		return nil, err
	}
	if err := repo.UpdateQuantity(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func publishStock(ctx context.Context, publisher ports.EventPublisher, product *domain.Product, action domain.StockAction) {
	publisher.Publish(ctx,
		domain.EventScope{TenantID: product.TenantID},
		domain.NewEvent(domain.EventStockUpdated, domain.NewStockPayload(product, action)),
	)
}
