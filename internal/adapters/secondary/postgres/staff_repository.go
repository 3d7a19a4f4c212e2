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

const staffColumns = `id, tenant_id, name, mobile, password_hash, role, area_id, is_active, created_at, updated_at`

type StaffRepository struct {
	pool *pgxpool.Pool
}

var _ ports.StaffRepository = (*StaffRepository)(nil)

func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func scanStaff(row pgx.Row) (*domain.Staff, error) {
	var (
		s         domain.Staff
		tenantID  pgtype.UUID
		areaID    pgtype.UUID
		role      string
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&s.ID, &tenantID, &s.Name, &s.Mobile, &s.PasswordHash, &role,
		&areaID, &s.IsActive, &s.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	s.TenantID = utils.FromTenantUUID(tenantID)
	s.AreaID = utils.FromUUID(areaID)
	s.Role = domain.Role(role)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = utils.FromTimestamptz(updatedAt)
	return &s, nil
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO staff (id, tenant_id, name, mobile, password_hash, role, area_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+staffColumns,
		staff.ID, utils.ToTenantUUID(staff.TenantID), staff.Name, staff.Mobile, staff.PasswordHash,
		string(staff.Role), utils.ToUUID(staff.AreaID), staff.IsActive, staff.CreatedAt,
	)

	created, err := scanStaff(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrStaffExists
		}
		return nil, err
	}
	return created, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)

	staff, err := scanStaff(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStaffNotFound)
	}
	return staff, nil
}

func (r *StaffRepository) GetByMobile(ctx context.Context, mobile string) (*domain.Staff, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE mobile = $1`, mobile)

	staff, err := scanStaff(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStaffNotFound)
	}
	return staff, nil
}

func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	row := GetDBTX(ctx, r.pool).QueryRow(ctx, `
		UPDATE staff
		SET name = $2, mobile = $3, role = $4, area_id = $5, is_active = $6, updated_at = $7
		WHERE id = $1
		RETURNING `+staffColumns,
		staff.ID, staff.Name, staff.Mobile, string(staff.Role), utils.ToUUID(staff.AreaID),
		staff.IsActive, utils.ToTimestamptz(staff.UpdatedAt),
	)

	updated, err := scanStaff(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrStaffExists
		}
		return nil, notFound(err, apperrors.ErrStaffNotFound)
	}
	return updated, nil
}

func (r *StaffRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := GetDBTX(ctx, r.pool).Exec(ctx,
		`DELETE FROM staff WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return expectRow(tag, err, apperrors.ErrStaffNotFound)
}

func (r *StaffRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Staff, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx,
		`SELECT `+staffColumns+` FROM staff WHERE tenant_id = $1 ORDER BY name, id`, tenantID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanStaff)
}
