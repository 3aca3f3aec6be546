package domain

import "time"

// PrescriptionItem is one prescribed medication.
type PrescriptionItem struct {
	ID             string    `json:"id"`
	PrescriptionID string    `json:"prescription_id"`
	Drug           string    `json:"drug"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	DurationDays   int       `json:"duration_days"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Prescription is issued by a doctor for a patient.
type Prescription struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patient_id"`
	DoctorID      string             `json:"doctor_id"`
	AppointmentID *string            `json:"appointment_id,omitempty"`
	Items         []PrescriptionItem `json:"items"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
