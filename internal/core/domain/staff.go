package domain

import (
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
)

// Password and field limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
	MaxNameLength     = 255
	MaxMobileLength   = 20
)

// PasswordRequirements defines what a valid password needs
type PasswordRequirements struct {
	MinLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumber    bool
}

// DefaultPasswordRequirements returns the default password requirements
func DefaultPasswordRequirements() PasswordRequirements {
	return PasswordRequirements{
		MinLength:        MinPasswordLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
	}
}

// Staff is an employee of a distributor. Superadmins have no tenant.
type Staff struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         string
	Mobile       string
	PasswordHash string
	Role         Role
	AreaID       *uuid.UUID
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// StaffParams holds parameters for creating a staff member
type StaffParams struct {
	Name     string
	Mobile   string
	Password string
	Role     Role
	AreaID   *uuid.UUID
}

// Validate validates staff creation parameters
func (p *StaffParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Name == "" {
		errs.Add("name", "Name is required")
	} else if len(p.Name) > MaxNameLength {
		errs.Add("name", "Name must be 255 characters or less")
	}

	if p.Mobile == "" {
		errs.Add("mobile", "Mobile number is required")
	} else if !isValidMobile(p.Mobile) {
		errs.Add("mobile", "Mobile number must contain 7 to 20 digits")
	}

	if !p.Role.IsValid() || p.Role == RoleSuperAdmin {
		errs.Add("role", "Role must be one of admin, manager, salesman")
	}

	if p.Role == RoleSalesman && p.AreaID == nil {
		errs.Add("areaId", "Salesman must be assigned to an area")
	}

	for _, msg := range ValidatePassword(p.Password) {
		errs.Add("password", msg)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements.
// Returns a slice of error messages (empty if valid)
func ValidatePassword(password string) []string {
	var errors []string
	requirements := DefaultPasswordRequirements()

	if len(password) < requirements.MinLength {
		errors = append(errors, "Password must be at least 8 characters long")
	}

	if len(password) > MaxPasswordLength {
		errors = append(errors, "Password must be 72 characters or less")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	if requirements.RequireUppercase && !hasUpper {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if requirements.RequireLowercase && !hasLower {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if requirements.RequireNumber && !hasNumber {
		errors = append(errors, "Password must contain at least one number")
	}

	return errors
}

func isValidMobile(mobile string) bool {
	digits := 0
	for i, r := range mobile {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7 && len(mobile) <= MaxMobileLength
}

// CheckPassword verifies if the provided password matches the stored hash
func (s *Staff) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password))
	return err == nil
}

// Actor returns the identity this staff member acts as.
func (s *Staff) Actor() Actor {
	return Actor{UserID: s.ID, TenantID: s.TenantID, Role: s.Role, AreaID: s.AreaID}
}

// SetActive toggles the account status.
func (s *Staff) SetActive(active bool) {
	s.IsActive = active
	now := time.Now().UTC()
	s.UpdatedAt = &now
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	if errs := ValidatePassword(password); len(errs) > 0 {
		return "", apperrors.ErrPasswordTooWeak
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewStaff creates an active staff member inside a tenant.
func NewStaff(params StaffParams, tenantID uuid.UUID) (*Staff, error) {
	if tenantID == uuid.Nil {
		return nil, apperrors.ErrTenantRequired
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	return &Staff{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         params.Name,
		Mobile:       params.Mobile,
		PasswordHash: hashed,
		Role:         params.Role,
		AreaID:       params.AreaID,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
