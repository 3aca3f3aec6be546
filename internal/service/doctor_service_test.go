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

func TestSetAvailability_Validation(t *testing.T) {
	doctors := newFakeDoctorRepo()
	doctor := &domain.Doctor{UserID: "doc-user"}
	require.NoError(t, doctors.Create(context.Background(), doctor))
	svc := service.NewDoctorService(doctors)

	valid := service.AvailabilityInput{Weekday: time.Monday, StartMinute: 9 * 60, EndMinute: 17 * 60, SlotMinutes: 30}

	tests := []struct {
		name    string
		input   service.AvailabilityInput
		wantErr bool
	}{
		{"valid_window", valid, false},
		{"start_after_end", service.AvailabilityInput{Weekday: time.Monday, StartMinute: 600, EndMinute: 540, SlotMinutes: 30}, true},
		{"end_past_midnight", service.AvailabilityInput{Weekday: time.Monday, StartMinute: 600, EndMinute: 1500, SlotMinutes: 30}, true},
		{"zero_slot", service.AvailabilityInput{Weekday: time.Monday, StartMinute: 540, EndMinute: 600, SlotMinutes: 0}, true},
		{"slot_longer_than_window", service.AvailabilityInput{Weekday: time.Monday, StartMinute: 540, EndMinute: 600, SlotMinutes: 90}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := svc.SetAvailability(context.Background(), doctor.ID, []service.AvailabilityInput{tt.input})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)
				return
			}
			require.NoError(t, err)
			require.Len(t, windows, 1)
			assert.Equal(t, doctor.ID, windows[0].DoctorID)
		})
	}
}

func TestSetAvailability_ReplacesSchedule(t *testing.T) {
	doctors := newFakeDoctorRepo()
	doctor := &domain.Doctor{UserID: "doc-user"}
	require.NoError(t, doctors.Create(context.Background(), doctor))
	svc := service.NewDoctorService(doctors)

	_, err := svc.SetAvailability(context.Background(), doctor.ID, []service.AvailabilityInput{
		{Weekday: time.Monday, StartMinute: 540, EndMinute: 720, SlotMinutes: 30},
		{Weekday: time.Wednesday, StartMinute: 540, EndMinute: 720, SlotMinutes: 30},
	})
	require.NoError(t, err)

	windows, err := svc.SetAvailability(context.Background(), doctor.ID, []service.AvailabilityInput{
		{Weekday: time.Friday, StartMinute: 600, EndMinute: 780, SlotMinutes: 60},
	})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, time.Friday, windows[0].Weekday)
}

func TestSetAvailability_UnknownDoctor(t *testing.T) {
	svc := service.NewDoctorService(newFakeDoctorRepo())

	_, err := svc.SetAvailability(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}
