package domain

import "time"

// MedicalRecord captures one visit: diagnosis, notes and attached documents.
type MedicalRecord struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patient_id"`
	DoctorID      string             `json:"doctor_id"`
	AppointmentID *string            `json:"appointment_id,omitempty"`
	Diagnosis     string             `json:"diagnosis"`
	Notes         string             `json:"notes,omitempty"`
	Attachments   []RecordAttachment `json:"attachments"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// RecordAttachment stores metadata for a document attached to a record.
type RecordAttachment struct {
	ID              string    `json:"id"`
	MedicalRecordID string    `json:"medical_record_id"`
	StorageKey      string    `json:"storage_key"`
	FileName        string    `json:"file_name"`
	MimeType        string    `json:"mime_type,omitempty"`
	SizeBytes       int64     `json:"size_bytes"`
	CreatedAt       time.Time `json:"created_at"`
}
