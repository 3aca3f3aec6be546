package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// BillingService manages invoices.
type BillingService struct {
	invoices   repository.InvoiceRepository
	patients   repository.PatientRepository
	dispatcher events.Dispatcher
}

// NewBillingService constructs the service.
func NewBillingService(invoices repository.InvoiceRepository, patients repository.PatientRepository, dispatcher events.Dispatcher) *BillingService {
	return &BillingService{invoices: invoices, patients: patients, dispatcher: dispatcher}
}

// InvoiceItemInput describes one billed line.
type InvoiceItemInput struct {
	Description string
	AmountCents int64
}

// InvoiceCreateInput describes invoice creation.
type InvoiceCreateInput struct {
	PatientID     string
	AppointmentID *string
	Items         []InvoiceItemInput
}

// CreateInvoice creates a PENDING invoice; the total is the sum of items.
func (s *BillingService) CreateInvoice(ctx context.Context, actor Actor, input InvoiceCreateInput) (*domain.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.NewValidationError("invoice needs at least one item", nil)
	}
	patient, err := s.patients.GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	invoice := &domain.Invoice{
		PatientID:     input.PatientID,
		AppointmentID: input.AppointmentID,
		Status:        domain.InvoiceStatusPending,
	}
	for _, item := range input.Items {
		if item.AmountCents <= 0 {
			return nil, apperrors.NewValidationError("item amount must be positive", nil)
		}
		invoice.Items = append(invoice.Items, domain.InvoiceItem{
			Description: item.Description,
			AmountCents: item.AmountCents,
		})
		invoice.TotalCents += item.AmountCents
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventInvoiceCreated, actor, invoice, patient.UserID)
	return invoice, nil
}

// MarkPaid transitions a pending invoice to PAID.
func (s *BillingService) MarkPaid(ctx context.Context, actor Actor, invoiceID string) (*domain.Invoice, error) {
	return s.transition(ctx, actor, invoiceID, domain.InvoiceStatusPaid)
}

// Void transitions a pending invoice to VOID.
func (s *BillingService) Void(ctx context.Context, actor Actor, invoiceID string) (*domain.Invoice, error) {
	return s.transition(ctx, actor, invoiceID, domain.InvoiceStatusVoid)
}

func (s *BillingService) transition(ctx context.Context, actor Actor, invoiceID string, to domain.InvoiceStatus) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if invoice.Status != domain.InvoiceStatusPending {
		return nil, apperrors.NewConflict("invoice is not pending", nil)
	}

	var paidAt *time.Time
	if to == domain.InvoiceStatusPaid {
		now := time.Now()
		paidAt = &now
	}
	if err := s.invoices.SetStatus(ctx, invoiceID, to, paidAt); err != nil {
		return nil, apperrors.MapError(err)
	}
	invoice.Status = to
	invoice.PaidAt = paidAt

	if to == domain.InvoiceStatusPaid {
		if patient, err := s.patients.GetByID(ctx, invoice.PatientID); err == nil {
			s.publish(ctx, events.EventInvoicePaid, actor, invoice, patient.UserID)
		}
	}
	return invoice, nil
}

// GetByID fetches an invoice after an ownership check.
func (s *BillingService) GetByID(ctx context.Context, actor Actor, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.RolePatient {
		patient, err := s.patients.GetByID(ctx, invoice.PatientID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if patient.UserID != actor.UserID {
			return nil, apperrors.NewForbidden("not your invoice")
		}
	}
	return invoice, nil
}

// ListByPatient lists a patient's invoices.
func (s *BillingService) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Invoice, error) {
	invoices, err := s.invoices.ListByPatient(ctx, patientID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return invoices, nil
}

func (s *BillingService) publish(ctx context.Context, eventType events.EventType, actor Actor, invoice *domain.Invoice, patientUserID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:      eventType,
		Actor:     events.Actor{UserID: actor.UserID, Role: actor.Role},
		Timestamp: time.Now(),
		Payload: events.InvoiceEventPayload{
			InvoiceID:     invoice.ID,
			PatientID:     invoice.PatientID,
			PatientUserID: patientUserID,
			TotalCents:    invoice.TotalCents,
			Status:        invoice.Status,
		},
	})
}
