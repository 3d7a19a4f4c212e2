package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/mocks"
	"github.com/lorrc/distribution-backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaffWithPassword(t *testing.T, password string, active bool) *domain.Staff {
	t.Helper()
	hash, err := domain.HashPassword(password)
	require.NoError(t, err)
	return &domain.Staff{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		Name:         "Asha",
		Mobile:       "9876543210",
		PasswordHash: hash,
		Role:         domain.RoleManager,
		IsActive:     active,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewMockStaffRepository()
		svc := services.NewAuthService(repo)

		staff := newStaffWithPassword(t, "Password1", true)
		repo.On("GetByMobile", ctx, "9876543210").Return(staff, nil)

		got, err := svc.Login(ctx, " 9876543210 ", "Password1")

		require.NoError(t, err)
		assert.Equal(t, staff.ID, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("unknown mobile hides existence", func(t *testing.T) {
		repo := mocks.NewMockStaffRepository()
		svc := services.NewAuthService(repo)

		repo.On("GetByMobile", ctx, "1111111").Return(nil, apperrors.ErrStaffNotFound)

		got, err := svc.Login(ctx, "1111111", "Password1")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := mocks.NewMockStaffRepository()
		svc := services.NewAuthService(repo)

		repo.On("GetByMobile", ctx, "9876543210").Return(newStaffWithPassword(t, "Password1", true), nil)

		_, err := svc.Login(ctx, "9876543210", "Password2")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		repo := mocks.NewMockStaffRepository()
		svc := services.NewAuthService(repo)

		repo.On("GetByMobile", ctx, "9876543210").Return(newStaffWithPassword(t, "Password1", false), nil)

		_, err := svc.Login(ctx, "9876543210", "Password1")
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("missing fields", func(t *testing.T) {
		repo := mocks.NewMockStaffRepository()
		svc := services.NewAuthService(repo)

		_, err := svc.Login(ctx, "", "Password1")
		assert.ErrorIs(t, err, apperrors.ErrMobileRequired)

		_, err = svc.Login(ctx, "9876543210", "")
		assert.ErrorIs(t, err, apperrors.ErrPasswordRequired)

		repo.AssertNotCalled(t, "GetByMobile")
	})
}
