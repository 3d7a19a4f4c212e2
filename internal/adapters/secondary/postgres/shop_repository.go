package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/lorrc/distribution-backend/internal/core/utils"
)

const shopColumns = `id, tenant_id, area_id, name, owner_name, mobile, address, created_at, updated_at`

type ShopRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ShopRepository = (*ShopRepository)(nil)

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

func scanShop(row pgx.Row) (*domain.Shop, error) {
	var (
		s         domain.Shop
		areaID    pgtype.UUID
		ownerName pgtype.Text
		mobile    pgtype.Text
		address   pgtype.Text
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &s.TenantID, &areaID, &s.Name, &ownerName, &mobile, &address,
		&s.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.AreaID = utils.FromUUID(areaID)
	s.OwnerName = utils.FromString(ownerName)
	s.Mobile = utils.FromString(mobile)
	s.Address = utils.FromString(address)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &s, nil
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO shops (id, tenant_id, area_id, name, owner_name, mobile, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+shopColumns,
		shop.ID, shop.TenantID, utils.ToUUID(shop.AreaID), shop.Name,
		utils.ToString(shop.OwnerName), utils.ToString(shop.Mobile), utils.ToString(shop.Address),
		shop.CreatedAt,
	)
	return scanShop(row)
}

func (r *ShopRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Shop, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	shop, err := scanShop(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrShopNotFound)
	}
	return shop, nil
}

func (r *ShopRepository) Update(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE shops
		SET area_id = $3, name = $4, owner_name = $5, mobile = $6, address = $7, updated_at = $8
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+shopColumns,
		shop.TenantID, shop.ID, utils.ToUUID(shop.AreaID), shop.Name,
		utils.ToString(shop.OwnerName), utils.ToString(shop.Mobile), utils.ToString(shop.Address),
		utils.ToTimestamptz(shop.UpdatedAt),
	)

	updated, err := scanShop(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrShopNotFound)
	}
	return updated, nil
}

func (r *ShopRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx,
		`DELETE FROM shops WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if isForeignKeyViolation(err) {
		return apperrors.ErrConflict
	}
	return expectRow(tag, err, apperrors.ErrShopNotFound)
}

func (r *ShopRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, areaID *uuid.UUID) ([]*domain.Shop, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `
		SELECT `+shopColumns+` FROM shops
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR area_id = $2)
		ORDER BY name, id`,
		tenantID, utils.ToUUID(areaID),
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanShop)
}
