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

const areaColumns = `id, tenant_id, name, created_at, updated_at`

type AreaRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AreaRepository = (*AreaRepository)(nil)

func NewAreaRepository(pool *pgxpool.Pool) *AreaRepository {
	return &AreaRepository{pool: pool}
}

func scanArea(row pgx.Row) (*domain.Area, error) {
	var (
		a         domain.Area
		tenantID  pgtype.UUID
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&a.ID, &tenantID, &a.Name, &a.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	a.TenantID = utils.FromUUID(tenantID)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &a, nil
}

func (r *AreaRepository) Create(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO areas (id, tenant_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+areaColumns,
		area.ID, utils.ToUUID(area.TenantID), area.Name, area.CreatedAt,
	)
	return scanArea(row)
}

func (r *AreaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Area, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+areaColumns+` FROM areas WHERE id = $1`, id)

	area, err := scanArea(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAreaNotFound)
	}
	return area, nil
}

func (r *AreaRepository) Update(ctx context.Context, area *domain.Area) (*domain.Area, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE areas SET name = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+areaColumns,
		area.ID, area.Name, utils.ToTimestamptz(area.UpdatedAt),
	)

	updated, err := scanArea(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAreaNotFound)
	}
	return updated, nil
}

func (r *AreaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx, `DELETE FROM areas WHERE id = $1`, id)
	return expectRow(tag, err, apperrors.ErrAreaNotFound)
}

func (r *AreaRepository) ListVisible(ctx context.Context, tenantID uuid.UUID) ([]*domain.Area, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `
		SELECT `+areaColumns+` FROM areas
		WHERE tenant_id IS NULL OR tenant_id = $1
		ORDER BY name, id`,
		utils.ToTenantUUID(tenantID),
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanArea)
}
