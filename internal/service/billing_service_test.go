package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

type fakeInvoiceRepo struct {
	byID map[string]*domain.Invoice
	seq  int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*domain.Invoice{}}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice *domain.Invoice) error {
	f.seq++
	if invoice.ID == "" {
		invoice.ID = fmt.Sprintf("inv-%d", f.seq)
	}
	invoice.CreatedAt = time.Now()
	f.byID[invoice.ID] = invoice
	return nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*domain.Invoice, error) {
	invoice, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *invoice
	return &copied, nil
}

func (f *fakeInvoiceRepo) SetStatus(_ context.Context, id string, status domain.InvoiceStatus, paidAt *time.Time) error {
	invoice, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	invoice.Status = status
	invoice.PaidAt = paidAt
	return nil
}

func (f *fakeInvoiceRepo) ListByPatient(_ context.Context, patientID string, _, _ int) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, invoice := range f.byID {
		if invoice.PatientID == patientID {
			out = append(out, *invoice)
		}
	}
	return out, nil
}

func newBillingFixture(t *testing.T) (*service.BillingService, *fakePatientRepo, events.Dispatcher) {
	t.Helper()
	patients := newFakePatientRepo()
	dispatcher := events.NewInMemoryDispatcher()
	return service.NewBillingService(newFakeInvoiceRepo(), patients, dispatcher), patients, dispatcher
}

func staffActor() service.Actor {
	return service.Actor{UserID: "staff-user", Role: domain.RoleStaff}
}

func TestCreateInvoice_SumsItems(t *testing.T) {
	svc, patients, _ := newBillingFixture(t)
	patient := &domain.Patient{UserID: "pat-user"}
	require.NoError(t, patients.Create(context.Background(), patient))

	invoice, err := svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{
		PatientID: patient.ID,
		Items: []service.InvoiceItemInput{
			{Description: "consultation", AmountCents: 15000},
			{Description: "blood panel", AmountCents: 4200},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(19200), invoice.TotalCents)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.Len(t, invoice.Items, 2)
}

func TestCreateInvoice_Validation(t *testing.T) {
	svc, patients, _ := newBillingFixture(t)
	patient := &domain.Patient{UserID: "pat-user"}
	require.NoError(t, patients.Create(context.Background(), patient))

	_, err := svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{PatientID: patient.ID})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	_, err = svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{
		PatientID: patient.ID,
		Items:     []service.InvoiceItemInput{{Description: "free?", AmountCents: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", util.ToDomainError(err).Code)

	_, err = svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{
		PatientID: "missing",
		Items:     []service.InvoiceItemInput{{Description: "x", AmountCents: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", util.ToDomainError(err).Code)
}

func TestInvoiceTransitions(t *testing.T) {
	svc, patients, dispatcher := newBillingFixture(t)
	patient := &domain.Patient{UserID: "pat-user"}
	require.NoError(t, patients.Create(context.Background(), patient))

	var paidEvents int
	dispatcher.Subscribe(events.EventInvoicePaid, func(context.Context, events.Event) error {
		paidEvents++
		return nil
	})

	create := func(t *testing.T) *domain.Invoice {
		invoice, err := svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{
			PatientID: patient.ID,
			Items:     []service.InvoiceItemInput{{Description: "consultation", AmountCents: 100}},
		})
		require.NoError(t, err)
		return invoice
	}

	t.Run("pending_to_paid", func(t *testing.T) {
		invoice := create(t)
		paid, err := svc.MarkPaid(context.Background(), staffActor(), invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
		require.NotNil(t, paid.PaidAt)
		assert.Equal(t, 1, paidEvents)
	})

	t.Run("pending_to_void", func(t *testing.T) {
		invoice := create(t)
		voided, err := svc.Void(context.Background(), staffActor(), invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusVoid, voided.Status)
		assert.Nil(t, voided.PaidAt)
	})

	t.Run("paid_is_terminal", func(t *testing.T) {
		invoice := create(t)
		_, err := svc.MarkPaid(context.Background(), staffActor(), invoice.ID)
		require.NoError(t, err)

		_, err = svc.MarkPaid(context.Background(), staffActor(), invoice.ID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", util.ToDomainError(err).Code)

		_, err = svc.Void(context.Background(), staffActor(), invoice.ID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", util.ToDomainError(err).Code)
	})
}

func TestInvoiceGetByID_PatientOwnership(t *testing.T) {
	svc, patients, _ := newBillingFixture(t)
	patient := &domain.Patient{UserID: "pat-user"}
	require.NoError(t, patients.Create(context.Background(), patient))

	invoice, err := svc.CreateInvoice(context.Background(), staffActor(), service.InvoiceCreateInput{
		PatientID: patient.ID,
		Items:     []service.InvoiceItemInput{{Description: "consultation", AmountCents: 100}},
	})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), service.Actor{UserID: patient.UserID, Role: domain.RolePatient}, invoice.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), service.Actor{UserID: "stranger", Role: domain.RolePatient}, invoice.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", util.ToDomainError(err).Code)
}
