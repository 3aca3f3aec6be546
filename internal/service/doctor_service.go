package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// DoctorService manages doctor profiles and weekly availability.
type DoctorService struct {
	doctors repository.DoctorRepository
}

// NewDoctorService constructs the service.
func NewDoctorService(doctors repository.DoctorRepository) *DoctorService {
	return &DoctorService{doctors: doctors}
}

// AvailabilityInput is one weekly window.
type AvailabilityInput struct {
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
	SlotMinutes int
}

// GetByID fetches one doctor.
func (s *DoctorService) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doctor, nil
}

// GetOwn fetches the caller's own doctor profile.
func (s *DoctorService) GetOwn(ctx context.Context, userID string) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doctor, nil
}

// List returns doctors, optionally filtered by specialty.
func (s *DoctorService) List(ctx context.Context, specialty string, limit, offset int) ([]domain.Doctor, error) {
	doctors, err := s.doctors.List(ctx, specialty, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return doctors, nil
}

// Update modifies doctor profile fields.
func (s *DoctorService) Update(ctx context.Context, doctorID, specialty, phone string, fee int64) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if specialty != "" {
		doctor.Specialty = specialty
	}
	if phone != "" {
		doctor.Phone = phone
	}
	if fee > 0 {
		doctor.ConsultationFee = fee
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, apperrors.MapError(err)
	}
	return doctor, nil
}

// SetAvailability replaces the weekly schedule after validating windows.
func (s *DoctorService) SetAvailability(ctx context.Context, doctorID string, inputs []AvailabilityInput) ([]domain.AvailabilityWindow, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, apperrors.MapError(err)
	}

	windows := make([]domain.AvailabilityWindow, 0, len(inputs))
	for _, input := range inputs {
		if input.Weekday < time.Sunday || input.Weekday > time.Saturday {
			return nil, apperrors.NewValidationError("weekday out of range", nil)
		}
		if input.StartMinute < 0 || input.EndMinute > 24*60 || input.StartMinute >= input.EndMinute {
			return nil, apperrors.NewValidationError("window bounds invalid", nil)
		}
		if input.SlotMinutes <= 0 || input.SlotMinutes > input.EndMinute-input.StartMinute {
			return nil, apperrors.NewValidationError("slot length invalid for window", nil)
		}
		windows = append(windows, domain.AvailabilityWindow{
			DoctorID:    doctorID,
			Weekday:     input.Weekday,
			StartMinute: input.StartMinute,
			EndMinute:   input.EndMinute,
			SlotMinutes: input.SlotMinutes,
		})
	}

	if err := s.doctors.ReplaceAvailability(ctx, doctorID, windows); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.doctors.ListAvailability(ctx, doctorID)
}

// GetAvailability returns the weekly schedule.
func (s *DoctorService) GetAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	windows, err := s.doctors.ListAvailability(ctx, doctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return windows, nil
}
