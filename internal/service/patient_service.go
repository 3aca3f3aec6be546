package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// PatientService manages patient demographic profiles.
type PatientService struct {
	patients repository.PatientRepository
}

// NewPatientService constructs the service.
func NewPatientService(patients repository.PatientRepository) *PatientService {
	return &PatientService{patients: patients}
}

// PatientProfileInput describes editable profile fields.
type PatientProfileInput struct {
	DateOfBirth *time.Time
	Gender      string
	Phone       string
	Address     string
	BloodGroup  string
}

// GetByID fetches a patient profile.
func (s *PatientService) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// GetOwn fetches the caller's own patient profile.
func (s *PatientService) GetOwn(ctx context.Context, userID string) (*domain.Patient, error) {
	patient, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// UpdateProfile updates a profile by patient id.
func (s *PatientService) UpdateProfile(ctx context.Context, patientID string, input PatientProfileInput) (*domain.Patient, error) {
	patient, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	applyProfile(patient, input)
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// UpdateOwnProfile updates the caller's own profile.
func (s *PatientService) UpdateOwnProfile(ctx context.Context, userID string, input PatientProfileInput) (*domain.Patient, error) {
	patient, err := s.patients.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	applyProfile(patient, input)
	if err := s.patients.Update(ctx, patient); err != nil {
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// List returns paginated patients.
func (s *PatientService) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	patients, err := s.patients.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return patients, nil
}

func applyProfile(patient *domain.Patient, input PatientProfileInput) {
	if input.DateOfBirth != nil {
		patient.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != "" {
		patient.Gender = input.Gender
	}
	if input.Phone != "" {
		patient.Phone = input.Phone
	}
	if input.Address != "" {
		patient.Address = input.Address
	}
	if input.BloodGroup != "" {
		patient.BloodGroup = input.BloodGroup
	}
}
