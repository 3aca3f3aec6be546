package domain

import "time"

// Doctor is the clinical profile linked to a DOCTOR user account.
type Doctor struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Specialty       string    `json:"specialty"`
	ConsultationFee int64     `json:"consultation_fee_cents"`
	Phone           string    `json:"phone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AvailabilityWindow is a recurring weekly consultation window for a doctor.
// Start and End are minutes from midnight; SlotMinutes divides the window
// into bookable slots.
type AvailabilityWindow struct {
	ID          string       `json:"id"`
	DoctorID    string       `json:"doctor_id"`
	Weekday     time.Weekday `json:"weekday"`
	StartMinute int          `json:"start_minute"`
	EndMinute   int          `json:"end_minute"`
	SlotMinutes int          `json:"slot_minutes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
