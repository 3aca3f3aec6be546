package dto

import "time"

// PatientUpdateRequest payload for profile edits.
type PatientUpdateRequest struct {
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	BloodGroup  string     `json:"blood_group"`
}

// DoctorUpdateRequest payload for doctor profile edits.
type DoctorUpdateRequest struct {
	Specialty       string `json:"specialty"`
	Phone           string `json:"phone"`
	ConsultationFee int64  `json:"consultation_fee_cents" validate:"min=0"`
}

// AvailabilityWindowRequest is one weekly window.
type AvailabilityWindowRequest struct {
	Weekday     int `json:"weekday" validate:"min=0,max=6"`
	StartMinute int `json:"start_minute" validate:"min=0,max=1439"`
	EndMinute   int `json:"end_minute" validate:"min=1,max=1440"`
	SlotMinutes int `json:"slot_minutes" validate:"min=5,max=240"`
}

// AvailabilityRequest replaces the full weekly schedule.
type AvailabilityRequest struct {
	Windows []AvailabilityWindowRequest `json:"windows" validate:"required,dive"`
}

// AppointmentBookRequest payload for booking.
type AppointmentBookRequest struct {
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id" validate:"required"`
	StartsAt  time.Time `json:"starts_at" validate:"required"`
	Reason    string    `json:"reason"`
}

// InvoiceItemRequest one billed line.
type InvoiceItemRequest struct {
	Description string `json:"description" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
}

// InvoiceCreateRequest payload for invoice creation.
type InvoiceCreateRequest struct {
	PatientID     string               `json:"patient_id" validate:"required"`
	AppointmentID *string              `json:"appointment_id"`
	Items         []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PrescriptionItemRequest one prescribed medication.
type PrescriptionItemRequest struct {
	Drug         string `json:"drug" validate:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"duration_days" validate:"min=0"`
	Notes        string `json:"notes"`
}

// PrescriptionCreateRequest payload for issuing a prescription.
type PrescriptionCreateRequest struct {
	PatientID     string                    `json:"patient_id" validate:"required"`
	AppointmentID *string                   `json:"appointment_id"`
	Notes         string                    `json:"notes"`
	Items         []PrescriptionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AttachmentRequest metadata for an uploaded document.
type AttachmentRequest struct {
	StorageKey string `json:"storage_key" validate:"required"`
	FileName   string `json:"file_name" validate:"required"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes" validate:"min=0"`
}

// RecordCreateRequest payload for visit records.
type RecordCreateRequest struct {
	PatientID     string              `json:"patient_id" validate:"required"`
	AppointmentID *string             `json:"appointment_id"`
	Diagnosis     string              `json:"diagnosis" validate:"required"`
	Notes         string              `json:"notes"`
	Attachments   []AttachmentRequest `json:"attachments" validate:"dive"`
}

// RecordUpdateRequest payload for record amendments.
type RecordUpdateRequest struct {
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
}

// FitSyncRequest payload for a sync pull.
type FitSyncRequest struct {
	From time.Time `json:"from" validate:"required"`
	To   time.Time `json:"to" validate:"required"`
}
