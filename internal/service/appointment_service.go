package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AppointmentService coordinates slot generation and booking workflows.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	patients     repository.PatientRepository
	dispatcher   events.Dispatcher
}

// AppointmentDependencies bundles repositories for the service.
type AppointmentDependencies struct {
	AppointmentRepo repository.AppointmentRepository
	DoctorRepo      repository.DoctorRepository
	PatientRepo     repository.PatientRepository
	Dispatcher      events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments: deps.AppointmentRepo,
		doctors:      deps.DoctorRepo,
		patients:     deps.PatientRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Actor identifies the caller for ownership checks.
type Actor struct {
	UserID string
	Role   domain.Role
}

// Slots expands the doctor's availability windows for the given date into
// bookable intervals and marks the ones already taken by non-cancelled
// appointments. Plain interval arithmetic; no reservation is made.
func (s *AppointmentService) Slots(ctx context.Context, doctorID string, date time.Time) ([]domain.Slot, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, apperrors.MapError(err)
	}
	windows, err := s.doctors.ListAvailability(ctx, doctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	booked, err := s.appointments.ListForDoctorBetween(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	var slots []domain.Slot
	for _, w := range windows {
		if w.Weekday != date.Weekday() {
			continue
		}
		for minute := w.StartMinute; minute+w.SlotMinutes <= w.EndMinute; minute += w.SlotMinutes {
			start := dayStart.Add(time.Duration(minute) * time.Minute)
			end := start.Add(time.Duration(w.SlotMinutes) * time.Minute)
			slots = append(slots, domain.Slot{
				StartsAt: start,
				EndsAt:   end,
				Taken:    overlapsAny(booked, start, end),
			})
		}
	}
	return slots, nil
}

// BookInput describes a booking request.
type BookInput struct {
	PatientID string
	DoctorID  string
	StartsAt  time.Time
	Reason    string
}

// Book creates an appointment on a generated slot boundary. The start must
// fall on a slot boundary inside an availability window and the slot must be
// free.
func (s *AppointmentService) Book(ctx context.Context, actor Actor, input BookInput) (*domain.Appointment, error) {
	patient, err := s.patients.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.RolePatient && patient.UserID != actor.UserID {
		return nil, apperrors.NewForbidden("patients may only book for themselves")
	}
	doctor, err := s.doctors.GetByID(ctx, input.DoctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	endsAt, err := s.slotEnd(ctx, input.DoctorID, input.StartsAt)
	if err != nil {
		return nil, err
	}

	taken, err := s.appointments.ListForDoctorBetween(ctx, input.DoctorID, input.StartsAt, endsAt)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(taken) > 0 {
		return nil, apperrors.NewConflict("slot already booked", nil)
	}

	appt := &domain.Appointment{
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		StartsAt:  input.StartsAt,
		EndsAt:    endsAt,
		Reason:    input.Reason,
		Status:    domain.AppointmentStatusBooked,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAppointmentBooked, actor, appt, patient.UserID, doctor.UserID)
	return appt, nil
}

// Cancel cancels a booked appointment. Allowed: the owning patient, the
// appointment's doctor, or admin-equivalent callers.
func (s *AppointmentService) Cancel(ctx context.Context, actor Actor, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if appt.Status != domain.AppointmentStatusBooked {
		return nil, apperrors.NewConflict("appointment is not booked", nil)
	}

	patient, err := s.patients.GetByID(ctx, appt.PatientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	doctor, err := s.doctors.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	switch actor.Role {
	case domain.RoleSuperAdmin, domain.RoleStaff:
	case domain.RolePatient:
		if patient.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your appointment")
		}
	case domain.RoleDoctor:
		if doctor.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your appointment")
		}
	default:
		return nil, apperrors.NewForbidden("insufficient role")
	}

	appt.Status = domain.AppointmentStatusCancelled
	appt.CancelledBy = &actor.UserID
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAppointmentCancelled, actor, appt, patient.UserID, doctor.UserID)
	return appt, nil
}

// Complete marks an appointment completed; only the appointment's doctor may.
func (s *AppointmentService) Complete(ctx context.Context, actor Actor, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if appt.Status != domain.AppointmentStatusBooked {
		return nil, apperrors.NewConflict("appointment is not booked", nil)
	}

	doctor, err := s.doctors.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if doctor.UserID != actor.UserID {
		return nil, apperrors.NewForbidden("not your appointment")
	}

	patient, err := s.patients.GetByID(ctx, appt.PatientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	appt.Status = domain.AppointmentStatusCompleted
	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAppointmentCompleted, actor, appt, patient.UserID, doctor.UserID)
	return appt, nil
}

// GetByID fetches one appointment after an ownership check.
func (s *AppointmentService) GetByID(ctx context.Context, actor Actor, appointmentID string) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.authorizeView(ctx, actor, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListFilter narrows appointment listings.
type ListFilter struct {
	Statuses []domain.AppointmentStatus
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// ListForPatient lists a patient's appointments.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string, filter ListFilter) ([]domain.Appointment, error) {
	return s.list(ctx, repository.AppointmentFilter{
		PatientID: &patientID,
		Statuses:  filter.Statuses,
		From:      filter.From,
		To:        filter.To,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	})
}

// ListForDoctor lists a doctor's appointments.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID string, filter ListFilter) ([]domain.Appointment, error) {
	return s.list(ctx, repository.AppointmentFilter{
		DoctorID: &doctorID,
		Statuses: filter.Statuses,
		From:     filter.From,
		To:       filter.To,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}

func (s *AppointmentService) list(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	appts, err := s.appointments.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return appts, nil
}

func (s *AppointmentService) authorizeView(ctx context.Context, actor Actor, appt *domain.Appointment) error {
	switch actor.Role {
	case domain.RoleSuperAdmin, domain.RoleStaff:
		return nil
	case domain.RolePatient:
		patient, err := s.patients.GetByID(ctx, appt.PatientID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if patient.UserID != actor.UserID {
			return apperrors.NewForbidden("not your appointment")
		}
		return nil
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByID(ctx, appt.DoctorID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if doctor.UserID != actor.UserID {
			return apperrors.NewForbidden("not your appointment")
		}
		return nil
	}
	return apperrors.NewForbidden("insufficient role")
}

// slotEnd validates the start against the weekly schedule and returns the
// slot's end time.
func (s *AppointmentService) slotEnd(ctx context.Context, doctorID string, startsAt time.Time) (time.Time, error) {
	windows, err := s.doctors.ListAvailability(ctx, doctorID)
	if err != nil {
		return time.Time{}, apperrors.MapError(err)
	}

	startMinute := startsAt.Hour()*60 + startsAt.Minute()
	for _, w := range windows {
		if w.Weekday != startsAt.Weekday() {
			continue
		}
		if startMinute < w.StartMinute || startMinute+w.SlotMinutes > w.EndMinute {
			continue
		}
		if (startMinute-w.StartMinute)%w.SlotMinutes != 0 {
			continue
		}
		return startsAt.Add(time.Duration(w.SlotMinutes) * time.Minute), nil
	}
	return time.Time{}, apperrors.NewValidationError("start is not a bookable slot", nil)
}

func (s *AppointmentService) publish(ctx context.Context, eventType events.EventType, actor Actor, appt *domain.Appointment, patientUserID, doctorUserID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload: events.AppointmentEventPayload{
			AppointmentID: appt.ID,
			PatientID:     appt.PatientID,
			PatientUserID: patientUserID,
			DoctorID:      appt.DoctorID,
			DoctorUserID:  doctorUserID,
			StartsAt:      appt.StartsAt,
			Status:        appt.Status,
		},
	})
}

func overlapsAny(appts []domain.Appointment, start, end time.Time) bool {
	for _, appt := range appts {
		if appt.StartsAt.Before(end) && appt.EndsAt.After(start) {
			return true
		}
	}
	return false
}
