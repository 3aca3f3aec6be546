package domain

import "time"

// Patient holds demographic data linked to a PATIENT user account.
type Patient struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	BloodGroup  string     `json:"blood_group,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
