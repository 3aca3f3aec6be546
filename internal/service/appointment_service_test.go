package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// 2026-09-07 is a Monday.
var monday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type apptFixture struct {
	svc      *service.AppointmentService
	appts    *fakeAppointmentRepo
	doctors  *fakeDoctorRepo
	patients *fakePatientRepo
	doctor   *domain.Doctor
	patient  *domain.Patient
}

func newApptFixture(t *testing.T) *apptFixture {
	t.Helper()
	appts := newFakeAppointmentRepo()
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()

	doctor := &domain.Doctor{UserID: "doc-user", Specialty: "cardiology"}
	require.NoError(t, doctors.Create(context.Background(), doctor))
	// Mondays 09:00-12:00 in 30 minute slots.
	require.NoError(t, doctors.ReplaceAvailability(context.Background(), doctor.ID, []domain.AvailabilityWindow{{
		DoctorID:    doctor.ID,
		Weekday:     time.Monday,
		StartMinute: 9 * 60,
		EndMinute:   12 * 60,
		SlotMinutes: 30,
	}}))

	patient := &domain.Patient{UserID: "pat-user"}
	require.NoError(t, patients.Create(context.Background(), patient))

	svc := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: appts,
		DoctorRepo:      doctors,
		PatientRepo:     patients,
	})
	return &apptFixture{svc: svc, appts: appts, doctors: doctors, patients: patients, doctor: doctor, patient: patient}
}

func patientActor(f *apptFixture) service.Actor {
	return service.Actor{UserID: f.patient.UserID, Role: domain.RolePatient}
}

func TestSlots_ExpandsWindows(t *testing.T) {
	f := newApptFixture(t)

	slots, err := f.svc.Slots(context.Background(), f.doctor.ID, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, monday.Add(9*time.Hour), slots[0].StartsAt)
	assert.Equal(t, monday.Add(9*time.Hour+30*time.Minute), slots[0].EndsAt)
	assert.Equal(t, monday.Add(11*time.Hour+30*time.Minute), slots[5].StartsAt)
	for _, slot := range slots {
		assert.False(t, slot.Taken)
	}
}

func TestSlots_EmptyOnOtherWeekday(t *testing.T) {
	f := newApptFixture(t)

	tuesday := monday.AddDate(0, 0, 1)
	slots, err := f.svc.Slots(context.Background(), f.doctor.ID, tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlots_MarksBookedSlotsTaken(t *testing.T) {
	f := newApptFixture(t)

	_, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(10 * time.Hour),
	})
	require.NoError(t, err)

	slots, err := f.svc.Slots(context.Background(), f.doctor.ID, monday)
	require.NoError(t, err)

	var taken int
	for _, slot := range slots {
		if slot.Taken {
			taken++
			assert.Equal(t, monday.Add(10*time.Hour), slot.StartsAt)
		}
	}
	assert.Equal(t, 1, taken)
}

func TestBook_RejectsOffBoundaryStart(t *testing.T) {
	f := newApptFixture(t)

	tests := []struct {
		name  string
		start time.Time
	}{
		{"before_window", monday.Add(8 * time.Hour)},
		{"mid_slot", monday.Add(9*time.Hour + 15*time.Minute)},
		{"no_room_before_end", monday.Add(11*time.Hour + 45*time.Minute)},
		{"after_window", monday.Add(13 * time.Hour)},
		{"wrong_weekday", monday.AddDate(0, 0, 1).Add(9 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
				PatientID: f.patient.ID,
				DoctorID:  f.doctor.ID,
				StartsAt:  tt.start,
			})
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
		})
	}
}

func TestBook_ConflictOnTakenSlot(t *testing.T) {
	f := newApptFixture(t)
	input := service.BookInput{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(9 * time.Hour),
	}

	_, err := f.svc.Book(context.Background(), patientActor(f), input)
	require.NoError(t, err)

	_, err = f.svc.Book(context.Background(), patientActor(f), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", util.ToDomainError(err).Code)
}

func TestBook_CancelledSlotIsBookableAgain(t *testing.T) {
	f := newApptFixture(t)
	input := service.BookInput{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(9 * time.Hour),
	}

	appt, err := f.svc.Book(context.Background(), patientActor(f), input)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), patientActor(f), appt.ID)
	require.NoError(t, err)

	_, err = f.svc.Book(context.Background(), patientActor(f), input)
	assert.NoError(t, err)
}

func TestBook_PatientCannotBookForOthers(t *testing.T) {
	f := newApptFixture(t)
	other := &domain.Patient{UserID: "other-user"}
	require.NoError(t, f.patients.Create(context.Background(), other))

	_, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
		PatientID: other.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(9 * time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)
}

func TestCancel_Ownership(t *testing.T) {
	f := newApptFixture(t)

	book := func(t *testing.T, start time.Time) *domain.Appointment {
		appt, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
			PatientID: f.patient.ID,
			DoctorID:  f.doctor.ID,
			StartsAt:  start,
		})
		require.NoError(t, err)
		return appt
	}

	t.Run("owning_patient", func(t *testing.T) {
		appt := book(t, monday.Add(9*time.Hour))
		cancelled, err := f.svc.Cancel(context.Background(), patientActor(f), appt.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledBy)
		assert.Equal(t, f.patient.UserID, *cancelled.CancelledBy)
	})

	t.Run("appointment_doctor", func(t *testing.T) {
		appt := book(t, monday.Add(10*time.Hour))
		_, err := f.svc.Cancel(context.Background(), service.Actor{UserID: f.doctor.UserID, Role: domain.RoleDoctor}, appt.ID)
		assert.NoError(t, err)
	})

	t.Run("staff", func(t *testing.T) {
		appt := book(t, monday.Add(11*time.Hour))
		_, err := f.svc.Cancel(context.Background(), service.Actor{UserID: "staff-user", Role: domain.RoleStaff}, appt.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger_patient", func(t *testing.T) {
		appt := book(t, monday.Add(9*time.Hour+30*time.Minute))
		_, err := f.svc.Cancel(context.Background(), service.Actor{UserID: "stranger", Role: domain.RolePatient}, appt.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)
	})

	t.Run("already_cancelled", func(t *testing.T) {
		appt := book(t, monday.Add(10*time.Hour+30*time.Minute))
		_, err := f.svc.Cancel(context.Background(), patientActor(f), appt.ID)
		require.NoError(t, err)
		_, err = f.svc.Cancel(context.Background(), patientActor(f), appt.ID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", util.ToDomainError(err).Code)
	})
}

func TestComplete_OnlyAppointmentDoctor(t *testing.T) {
	f := newApptFixture(t)
	appt, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), service.Actor{UserID: "other-doc", Role: domain.RoleDoctor}, appt.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)

	completed, err := f.svc.Complete(context.Background(), service.Actor{UserID: f.doctor.UserID, Role: domain.RoleDoctor}, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCompleted, completed.Status)
}

func TestGetByID_ViewAuthorization(t *testing.T) {
	f := newApptFixture(t)
	appt, err := f.svc.Book(context.Background(), patientActor(f), service.BookInput{
		PatientID: f.patient.ID,
		DoctorID:  f.doctor.ID,
		StartsAt:  monday.Add(9 * time.Hour),
	})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), patientActor(f), appt.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), service.Actor{UserID: "staff-user", Role: domain.RoleStaff}, appt.ID)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), service.Actor{UserID: "stranger", Role: domain.RolePatient}, appt.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)
}

func TestGetByID_UnknownIsNotFound(t *testing.T) {
	f := newApptFixture(t)

	_, err := f.svc.GetByID(context.Background(), service.Actor{UserID: "staff-user", Role: domain.RoleStaff}, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}
