package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	staffRepo ports.StaffRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(staffRepo ports.StaffRepository) ports.AuthService {
	return &AuthService{staffRepo: staffRepo}
}

// Login authenticates a staff member with mobile number and password
func (s *AuthService) Login(ctx context.Context, mobile, password string) (*domain.Staff, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil, apperrors.ErrMobileRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	staff, err := s.staffRepo.GetByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, apperrors.ErrStaffNotFound) {
			// Don't reveal whether the account exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !staff.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return staff, nil
}
