package domain

import "time"

// NotificationKind enumerates notification triggers.
type NotificationKind string

const (
	NotificationAppointmentBooked    NotificationKind = "APPOINTMENT_BOOKED"
	NotificationAppointmentCancelled NotificationKind = "APPOINTMENT_CANCELLED"
	NotificationAppointmentCompleted NotificationKind = "APPOINTMENT_COMPLETED"
	NotificationInvoiceCreated       NotificationKind = "INVOICE_CREATED"
	NotificationInvoicePaid          NotificationKind = "INVOICE_PAID"
	NotificationPrescriptionIssued   NotificationKind = "PRESCRIPTION_ISSUED"
)

// Notification is a persisted message for one user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
