package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// NotificationService persists notifications for domain events and exposes
// per-user listing.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventAppointmentCancelled, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventAppointmentCompleted, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventInvoiceCreated, n.handleInvoice)
	n.dispatcher.Subscribe(events.EventInvoicePaid, n.handleInvoice)
	n.dispatcher.Subscribe(events.EventPrescriptionIssued, n.handlePrescription)
}

// ListForUser lists the caller's notifications.
func (n *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]domain.Notification, error) {
	list, err := n.notifications.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// MarkRead marks one of the caller's notifications read.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return apperrors.MapError(n.notifications.MarkRead(ctx, id, userID))
}

func (n *NotificationService) handleAppointment(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AppointmentEventPayload)
	if !ok {
		return nil
	}

	var kind domain.NotificationKind
	var title string
	switch event.Type {
	case events.EventAppointmentBooked:
		kind, title = domain.NotificationAppointmentBooked, "Appointment booked"
	case events.EventAppointmentCancelled:
		kind, title = domain.NotificationAppointmentCancelled, "Appointment cancelled"
	case events.EventAppointmentCompleted:
		kind, title = domain.NotificationAppointmentCompleted, "Appointment completed"
	default:
		return nil
	}

	body := fmt.Sprintf("Appointment on %s", payload.StartsAt.Format("2006-01-02 15:04"))
	n.persist(ctx, payload.PatientUserID, kind, title, body)
	n.persist(ctx, payload.DoctorUserID, kind, title, body)
	n.sendEmailStub(event)
	n.sendWebhookStub(event)
	return nil
}

func (n *NotificationService) handleInvoice(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.InvoiceEventPayload)
	if !ok {
		return nil
	}

	kind := domain.NotificationInvoiceCreated
	title := "New invoice"
	if event.Type == events.EventInvoicePaid {
		kind, title = domain.NotificationInvoicePaid, "Invoice paid"
	}
	body := fmt.Sprintf("Invoice total %.2f", float64(payload.TotalCents)/100)
	n.persist(ctx, payload.PatientUserID, kind, title, body)
	n.sendEmailStub(event)
	return nil
}

func (n *NotificationService) handlePrescription(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PrescriptionEventPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf("Prescription with %d item(s) issued", payload.ItemCount)
	n.persist(ctx, payload.PatientUserID, domain.NotificationPrescriptionIssued, "New prescription", body)
	n.sendEmailStub(event)
	return nil
}

func (n *NotificationService) persist(ctx context.Context, userID string, kind domain.NotificationKind, title, body string) {
	if userID == "" {
		return
	}
	notification := &domain.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("persist notification", zap.Error(err), zap.String("user_id", userID))
	}
}

func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookStub(event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
