package events

import (
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked    EventType = "appointment_booked"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventAppointmentCompleted EventType = "appointment_completed"
	EventInvoiceCreated       EventType = "invoice_created"
	EventInvoicePaid          EventType = "invoice_paid"
	EventPrescriptionIssued   EventType = "prescription_issued"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentEventPayload payload for booking lifecycle events.
type AppointmentEventPayload struct {
	AppointmentID string                   `json:"appointment_id"`
	PatientID     string                   `json:"patient_id"`
	PatientUserID string                   `json:"patient_user_id"`
	DoctorID      string                   `json:"doctor_id"`
	DoctorUserID  string                   `json:"doctor_user_id"`
	StartsAt      time.Time                `json:"starts_at"`
	Status        domain.AppointmentStatus `json:"status"`
}

// InvoiceEventPayload payload for billing events.
type InvoiceEventPayload struct {
	InvoiceID     string               `json:"invoice_id"`
	PatientID     string               `json:"patient_id"`
	PatientUserID string               `json:"patient_user_id"`
	TotalCents    int64                `json:"total_cents"`
	Status        domain.InvoiceStatus `json:"status"`
}

// PrescriptionEventPayload payload for prescription events.
type PrescriptionEventPayload struct {
	PrescriptionID string `json:"prescription_id"`
	PatientID      string `json:"patient_id"`
	PatientUserID  string `json:"patient_user_id"`
	DoctorID       string `json:"doctor_id"`
	ItemCount      int    `json:"item_count"`
}
