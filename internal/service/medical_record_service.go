package service

import (
	"context"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// MedicalRecordService manages visit records.
type MedicalRecordService struct {
	records  repository.MedicalRecordRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

// NewMedicalRecordService constructs the service.
func NewMedicalRecordService(records repository.MedicalRecordRepository, patients repository.PatientRepository, doctors repository.DoctorRepository) *MedicalRecordService {
	return &MedicalRecordService{records: records, patients: patients, doctors: doctors}
}

// AttachmentInput defines attachment metadata.
type AttachmentInput struct {
	StorageKey string
	FileName   string
	MimeType   string
	SizeBytes  int64
}

// RecordCreateInput describes record creation.
type RecordCreateInput struct {
	PatientID     string
	AppointmentID *string
	Diagnosis     string
	Notes         string
	Attachments   []AttachmentInput
}

// Create writes a visit record. The actor must be a doctor.
func (s *MedicalRecordService) Create(ctx context.Context, actor Actor, input RecordCreateInput) (*domain.MedicalRecord, error) {
	doctor, err := s.doctors.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.NewForbidden("doctor profile required")
	}
	if _, err := s.patients.GetByID(ctx, input.PatientID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.Diagnosis == "" {
		return nil, apperrors.NewValidationError("diagnosis is required", nil)
	}

	record := &domain.MedicalRecord{
		PatientID:     input.PatientID,
		DoctorID:      doctor.ID,
		AppointmentID: input.AppointmentID,
		Diagnosis:     input.Diagnosis,
		Notes:         input.Notes,
	}
	for _, att := range input.Attachments {
		record.Attachments = append(record.Attachments, domain.RecordAttachment{
			StorageKey: att.StorageKey,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			SizeBytes:  att.SizeBytes,
		})
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// UpdateNotes lets the authoring doctor amend diagnosis or notes.
func (s *MedicalRecordService) UpdateNotes(ctx context.Context, actor Actor, recordID, diagnosis, notes string) (*domain.MedicalRecord, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	doctor, err := s.doctors.GetByUserID(ctx, actor.UserID)
	if err != nil || doctor.ID != record.DoctorID {
		return nil, apperrors.NewForbidden("not your record")
	}

	if diagnosis != "" {
		record.Diagnosis = diagnosis
	}
	if notes != "" {
		record.Notes = notes
	}
	if err := s.records.Update(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// GetByID fetches one record after a visibility check: the owning patient,
// any doctor, or admin-equivalent callers.
func (s *MedicalRecordService) GetByID(ctx context.Context, actor Actor, recordID string) (*domain.MedicalRecord, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.RolePatient {
		patient, err := s.patients.GetByID(ctx, record.PatientID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if patient.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your record")
		}
	}
	return record, nil
}

// ListByPatient lists a patient's records.
func (s *MedicalRecordService) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.MedicalRecord, error) {
	records, err := s.records.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return records, nil
}
