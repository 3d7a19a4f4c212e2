package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	"github.com/lorrc/distribution-backend/internal/core/ports"
	"github.com/lorrc/distribution-backend/internal/core/utils"
	"github.com/samber/lo"
)

const orderColumns = `id, tenant_id, shop_id, area_id, created_by, status, total_amount, created_at, updated_at`

type OrderRepository struct {
	pool *pgxpool.Pool
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// beginner returns the running transaction, whose Begin opens a savepoint,
// or the pool.
func (r *OrderRepository) beginner(ctx context.Context) beginner {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o         domain.Order
		areaID    pgtype.UUID
		status    string
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&o.ID, &o.TenantID, &o.ShopID, &areaID, &o.CreatedBy, &status,
		&o.TotalAmount, &o.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	o.AreaID = utils.FromUUID(areaID)
	o.Status = domain.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &o, nil
}

// Create writes the order row and its items atomically.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var created *domain.Order

	err := pgx.BeginFunc(ctx, r.beginner(ctx), func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO orders (id, tenant_id, shop_id, area_id, created_by, status, total_amount, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+orderColumns,
			order.ID, order.TenantID, order.ShopID, utils.ToUUID(order.AreaID), order.CreatedBy,
			string(order.Status), order.TotalAmount, order.CreatedAt,
		)

		var err error
		created, err = scanOrder(row)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, item := range order.Items {
			batch.Queue(`
				INSERT INTO order_items (order_id, product_id, quantity, unit_price)
				VALUES ($1, $2, $3, $4)`,
				order.ID, item.ProductID, item.Quantity, item.UnitPrice,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		created.Items = append([]domain.OrderItem(nil), order.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Order, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	order, err := scanOrder(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrOrderNotFound)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx, `
		UPDATE orders SET status = $3, updated_at = $4
		WHERE tenant_id = $1 AND id = $2`,
		order.TenantID, order.ID, string(order.Status), utils.ToTimestamptz(order.UpdatedAt),
	)
	return expectRow(tag, err, apperrors.ErrOrderNotFound)
}

// Delete removes the order; its items go with it.
func (r *OrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx,
		`DELETE FROM orders WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return expectRow(tag, err, apperrors.ErrOrderNotFound)
}

// List returns orders newest first.
func (r *OrderRepository) List(ctx context.Context, params ports.ListOrdersRepoParams) ([]*domain.Order, error) {
	var status pgtype.Text
	if params.Status != nil {
		status = utils.ToString(string(*params.Status))
	}

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE tenant_id = $1
		  AND ($2::uuid IS NULL OR area_id = $2)
		  AND ($3::uuid IS NULL OR created_by = $3)
		  AND ($4::text IS NULL OR status = $4)
		ORDER BY created_at DESC, id
		LIMIT $5 OFFSET $6`,
		params.TenantID, utils.ToUUID(params.AreaID), utils.ToUUID(params.CreatedBy), status,
		params.Limit, params.Offset,
	)
	if err != nil {
		return nil, err
	}

	orders, err := collect(rows, scanOrder)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, orders...); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items on every order with one query.
func (r *OrderRepository) loadItems(ctx context.Context, orders ...*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := lo.KeyBy(orders, func(o *domain.Order) uuid.UUID { return o.ID })
	ids := lo.Map(orders, func(o *domain.Order, _ int) string { return o.ID.String() })

	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, product_id`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for _, order := range orders {
		order.Items = []domain.OrderItem{}
	}

	for rows.Next() {
		var (
			orderID uuid.UUID
			item    domain.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return err
		}
		if order, ok := byID[orderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}
