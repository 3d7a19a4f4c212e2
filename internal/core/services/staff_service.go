package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lorrc/distribution-backend/internal/core/domain"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/core/ports"
)

// StaffService manages the accounts of a tenant. Staff events are also sent
// to the affected member's personal group so their own sessions refresh.
type StaffService struct {
	staffRepo ports.StaffRepository
	authzSvc  ports.AuthorizationService
	publisher ports.EventPublisher
}

var _ ports.StaffService = (*StaffService)(nil)

func NewStaffService(
	staffRepo ports.StaffRepository,
	authzSvc ports.AuthorizationService,
	publisher ports.EventPublisher,
) ports.StaffService {
	return &StaffService{
		staffRepo: staffRepo,
		authzSvc:  authzSvc,
		publisher: publisher,
	}
}

func (s *StaffService) CreateStaff(ctx context.Context, actor domain.Actor, params domain.StaffParams) (*domain.Staff, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermStaffWrite); err != nil {
		return nil, err
	}

	staff, err := domain.NewStaff(params, actor.TenantID)
	if err != nil {
		return nil, err
	}

	// Mobile numbers double as login names.
	if _, err := s.staffRepo.GetByMobile(ctx, staff.Mobile); err == nil {
		return nil, apperrors.ErrStaffExists
	} else if !errors.Is(err, apperrors.ErrStaffNotFound) {
		return nil, err
	}

	created, err := s.staffRepo.Create(ctx, staff)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventStaffCreated, created, domain.NewStaffPayload(created))
	return created, nil
}

func (s *StaffService) GetStaff(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Staff, error) {
	// Everyone may read their own record.
	if id != actor.UserID {
		if err := authorizeTenant(ctx, s.authzSvc, actor, PermStaffRead); err != nil {
			return nil, err
		}
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff.ID != actor.UserID && !actor.Owns(staff.TenantID) {
		return nil, apperrors.ErrStaffNotFound
	}
	return staff, nil
}

func (s *StaffService) ListStaff(ctx context.Context, actor domain.Actor) ([]*domain.Staff, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermStaffRead); err != nil {
		return nil, err
	}
	return s.staffRepo.ListByTenant(ctx, actor.TenantID)
}

func (s *StaffService) UpdateStaff(ctx context.Context, actor domain.Actor, id uuid.UUID, params ports.UpdateStaffParams) (*domain.Staff, error) {
	staff, err := s.loadWritable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	errs := apperrors.NewValidationErrors()
	if params.Name == "" || len(params.Name) > domain.MaxNameLength {
		errs.Add("name", "Name is required and must be 255 characters or less")
	}
	if !params.Role.IsValid() || params.Role == domain.RoleSuperAdmin {
		errs.Add("role", "Role must be one of admin, manager, salesman")
	}
	if params.Role == domain.RoleSalesman && params.AreaID == nil {
		errs.Add("areaId", "Salesman must be assigned to an area")
	}
	if params.Mobile == "" {
		errs.Add("mobile", "Mobile number is required")
	}
	if errs.HasErrors() {
		return nil, errs
	}

	if params.Mobile != staff.Mobile {
		if _, err := s.staffRepo.GetByMobile(ctx, params.Mobile); err == nil {
			return nil, apperrors.ErrStaffExists
		} else if !errors.Is(err, apperrors.ErrStaffNotFound) {
			return nil, err
		}
	}

	staff.Name = params.Name
	staff.Mobile = params.Mobile
	staff.Role = params.Role
	staff.AreaID = params.AreaID

	updated, err := s.staffRepo.Update(ctx, staff)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventStaffUpdated, updated, domain.NewStaffPayload(updated))
	return updated, nil
}

// UpdateStaffStatus activates or deactivates an account.
func (s *StaffService) UpdateStaffStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, active bool) (*domain.Staff, error) {
	if id == actor.UserID {
		return nil, apperrors.NewBadRequestError(apperrors.ErrForbidden, "You cannot change your own status")
	}

	staff, err := s.loadWritable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	staff.SetActive(active)

	updated, err := s.staffRepo.Update(ctx, staff)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventStaffStatusUpdated, updated, domain.StaffPayload{
		StaffID:  updated.ID.String(),
		IsActive: &active,
	})
	return updated, nil
}

func (s *StaffService) DeleteStaff(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if id == actor.UserID {
		return apperrors.NewBadRequestError(apperrors.ErrForbidden, "You cannot delete your own account")
	}

	staff, err := s.loadWritable(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return err
	}

	s.publish(ctx, domain.EventStaffDeleted, staff, domain.StaffPayload{StaffID: staff.ID.String()})
	return nil
}

func (s *StaffService) loadWritable(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Staff, error) {
	if err := authorizeTenant(ctx, s.authzSvc, actor, PermStaffWrite); err != nil {
		return nil, err
	}

	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(staff.TenantID) {
		return nil, apperrors.ErrStaffNotFound
	}
	return staff, nil
}

func (s *StaffService) publish(ctx context.Context, eventType domain.EventType, staff *domain.Staff, payload domain.StaffPayload) {
	s.publisher.Publish(ctx,
		domain.EventScope{TenantID: staff.TenantID, UserID: staff.ID},
		domain.NewEvent(eventType, payload),
	)
}
