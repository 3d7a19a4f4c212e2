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

const categoryColumns = `id, tenant_id, name, created_at, updated_at`

type CategoryRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c         domain.Category
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO categories (id, tenant_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		category.ID, category.TenantID, category.Name, category.CreatedAt,
	)
	return scanCategory(row)
}

func (r *CategoryRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Category, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	category, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCategoryNotFound)
	}
	return category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE categories SET name = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+categoryColumns,
		category.TenantID, category.ID, category.Name, utils.ToTimestamptz(category.UpdatedAt),
	)

	updated, err := scanCategory(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCategoryNotFound)
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx,
		`DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return expectRow(tag, err, apperrors.ErrCategoryNotFound)
}

func (r *CategoryRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Category, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCategory)
}
