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

const productColumns = `id, tenant_id, category_id, name, sku, price, quantity, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p          domain.Product
		categoryID pgtype.UUID
		sku        pgtype.Text
		updatedAt  pgtype.Timestamptz
	)
	err := row.Scan(&p.ID, &p.TenantID, &categoryID, &p.Name, &sku, &p.Price, &p.Quantity,
		&p.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CategoryID = utils.FromUUID(categoryID)
	p.SKU = utils.FromString(sku)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO products (id, tenant_id, category_id, name, sku, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		product.ID, product.TenantID, utils.ToUUID(product.CategoryID), product.Name,
		utils.ToString(product.SKU), product.Price, product.Quantity, product.CreatedAt,
	)
	return scanProduct(row)
}

func (r *ProductRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
}

func (r *ProductRepository) GetForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*domain.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE`, tenantID, id)
}

func (r *ProductRepository) get(ctx context.Context, query string, tenantID, id uuid.UUID) (*domain.Product, error) {
	product, err := scanProduct(GetDBTX(ctx, r.pool).QueryRow(ctx, query, tenantID, id))
	if err != nil {
		return nil, notFound(err, apperrors.ErrProductNotFound)
	}
	return product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE products
		SET category_id = $3, name = $4, sku = $5, price = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+productColumns,
		product.TenantID, product.ID, utils.ToUUID(product.CategoryID), product.Name,
		utils.ToString(product.SKU), product.Price, utils.ToTimestamptz(product.UpdatedAt),
	)

	updated, err := scanProduct(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrProductNotFound)
	}
	return updated, nil
}

// UpdateQuantity writes the stock level only.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, product *domain.Product) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx, `
		UPDATE products SET quantity = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`,
		product.TenantID, product.ID, product.Quantity, utils.ToTimestamptz(product.UpdatedAt),
	)
	return expectRow(tag, err, apperrors.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx,
		`DELETE FROM products WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if isForeignKeyViolation(err) {
		return apperrors.ErrConflict
	}
	return expectRow(tag, err, apperrors.ErrProductNotFound)
}

func (r *ProductRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Product, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanProduct)
}
