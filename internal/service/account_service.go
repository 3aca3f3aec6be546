package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AccountService manages accounts on behalf of admin-equivalent callers.
// Role gating happens at the route layer; this service owns the lifecycle
// rules (which roles can be created, deactivation side effects).
type AccountService struct {
	users      repository.UserRepository
	patients   repository.PatientRepository
	doctors    repository.DoctorRepository
	bcryptCost int
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.Config, users repository.UserRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) *AccountService {
	return &AccountService{
		users:      users,
		patients:   patients,
		doctors:    doctors,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// AccountCreateInput describes an admin-created account.
type AccountCreateInput struct {
	Email      string
	Password   string
	Role       domain.Role
	GivenName  string
	FamilyName string
	// Doctor-only fields.
	Specialty       string
	ConsultationFee int64
	Phone           string
}

// CreateAccount creates a STAFF, DOCTOR or PATIENT account. SUPERADMIN
// accounts are provisioned out of band (seed/migration), never via the API.
func (s *AccountService) CreateAccount(ctx context.Context, input AccountCreateInput) (*domain.User, error) {
	if input.Role == domain.RoleSuperAdmin || !input.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be STAFF, DOCTOR or PATIENT", nil)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		GivenName:    input.GivenName,
		FamilyName:   input.FamilyName,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	switch input.Role {
	case domain.RolePatient:
		if err := s.patients.Create(ctx, &domain.Patient{UserID: user.ID, Phone: input.Phone}); err != nil {
			return nil, apperrors.MapError(err)
		}
	case domain.RoleDoctor:
		doctor := &domain.Doctor{
			UserID:          user.ID,
			Specialty:       input.Specialty,
			ConsultationFee: input.ConsultationFee,
			Phone:           input.Phone,
		}
		if err := s.doctors.Create(ctx, doctor); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return user, nil
}

// SetActive flips the account flag. Deactivation invalidates every
// outstanding credential for the account through the auth liveness check.
func (s *AccountService) SetActive(ctx context.Context, userID string, active bool) error {
	return apperrors.MapError(s.users.SetActive(ctx, userID, active))
}

// ListByRole returns accounts of one role.
func (s *AccountService) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", nil)
	}
	users, err := s.users.ListByRole(ctx, role, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetByID fetches one account.
func (s *AccountService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
