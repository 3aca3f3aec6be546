package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// PrescriptionService manages prescriptions issued by doctors.
type PrescriptionService struct {
	prescriptions repository.PrescriptionRepository
	patients      repository.PatientRepository
	doctors       repository.DoctorRepository
	dispatcher    events.Dispatcher
}

// NewPrescriptionService constructs the service.
func NewPrescriptionService(prescriptions repository.PrescriptionRepository, patients repository.PatientRepository, doctors repository.DoctorRepository, dispatcher events.Dispatcher) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		patients:      patients,
		doctors:       doctors,
		dispatcher:    dispatcher,
	}
}

// PrescriptionItemInput describes one prescribed medication.
type PrescriptionItemInput struct {
	Drug         string
	Dosage       string
	Frequency    string
	DurationDays int
	Notes        string
}

// PrescriptionCreateInput describes prescription creation.
type PrescriptionCreateInput struct {
	PatientID     string
	AppointmentID *string
	Notes         string
	Items         []PrescriptionItemInput
}

// Create issues a prescription. The actor must be the doctor.
func (s *PrescriptionService) Create(ctx context.Context, actor Actor, input PrescriptionCreateInput) (*domain.Prescription, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("prescription needs at least one item", nil)
	}
	doctor, err := s.doctors.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.NewForbidden("doctor profile required")
	}
	patient, err := s.patients.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	prescription := &domain.Prescription{
		PatientID:     input.PatientID,
		DoctorID:      doctor.ID,
		AppointmentID: input.AppointmentID,
		Notes:         input.Notes,
	}
	for _, item := range input.Items {
		if item.Drug == "" {
			return nil, apperrors.NewValidationError("item drug is required", nil)
		}
		prescription.Items = append(prescription.Items, domain.PrescriptionItem{
			Drug:         item.Drug,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			DurationDays: item.DurationDays,
			Notes:        item.Notes,
		})
	}

	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventPrescriptionIssued,
			Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload: events.PrescriptionEventPayload{
				PrescriptionID: prescription.ID,
				PatientID:      prescription.PatientID,
				PatientUserID:  patient.UserID,
				DoctorID:       prescription.DoctorID,
				ItemCount:      len(prescription.Items),
			},
		})
	}
	return prescription, nil
}

// GetByID fetches one prescription after an ownership check.
func (s *PrescriptionService) GetByID(ctx context.Context, actor Actor, id string) (*domain.Prescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	switch actor.Role {
	case domain.RoleSuperAdmin, domain.RoleStaff:
	case domain.RolePatient:
		patient, err := s.patients.GetByID(ctx, prescription.PatientID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if patient.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your prescription")
		}
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByID(ctx, prescription.DoctorID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if doctor.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your prescription")
		}
	default:
		return nil, apperrors.NewForbidden("insufficient role")
	}
	return prescription, nil
}

// ListByPatient lists a patient's prescriptions.
func (s *PrescriptionService) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Prescription, error) {
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return prescriptions, nil
}

// ListOwnByDoctor lists prescriptions issued by the calling doctor.
func (s *PrescriptionService) ListOwnByDoctor(ctx context.Context, doctorUserID string, limit, offset int) ([]domain.Prescription, error) {
	doctor, err := s.doctors.GetByUserID(ctx, doctorUserID)
	if err != nil {
		return nil, apperrors.NewForbidden("doctor profile required")
	}
	prescriptions, err := s.prescriptions.ListByDoctor(ctx, doctor.ID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return prescriptions, nil
}
