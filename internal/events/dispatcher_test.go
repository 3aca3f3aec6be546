package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/events"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	var got []events.Event
	d.Subscribe(events.EventAppointmentBooked, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), events.Event{
		Type:    events.EventAppointmentBooked,
		Payload: events.AppointmentEventPayload{AppointmentID: "a1"},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	payload, ok := got[0].Payload.(events.AppointmentEventPayload)
	require.True(t, ok)
	assert.Equal(t, "a1", payload.AppointmentID)
}

func TestDispatcher_UnrelatedTypeNotDelivered(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(events.EventInvoicePaid, func(context.Context, events.Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventAppointmentBooked}))
	assert.Zero(t, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := events.NewInMemoryDispatcher()

	second := false
	d.Subscribe(events.EventPrescriptionIssued, func(context.Context, events.Event) error {
		return errors.New("boom")
	})
	d.Subscribe(events.EventPrescriptionIssued, func(context.Context, events.Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), events.Event{Type: events.EventPrescriptionIssued}))
	assert.True(t, second)
}
