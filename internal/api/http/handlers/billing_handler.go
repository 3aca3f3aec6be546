package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// BillingHandler exposes invoice endpoints.
type BillingHandler struct {
	billing  *service.BillingService
	patients *service.PatientService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billing *service.BillingService, patients *service.PatientService) *BillingHandler {
	return &BillingHandler{billing: billing, patients: patients}
}

// Create handles POST /invoices (admin-equivalent).
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.InvoiceCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	input := service.InvoiceCreateInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.InvoiceItemInput{
			Description: item.Description,
			AmountCents: item.AmountCents,
		})
	}

	invoice, err := h.billing.CreateInvoice(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(util.OK(invoice))
}

// Get handles GET /invoices/:id.
func (h *BillingHandler) Get(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	invoice, err := h.billing.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(invoice))
}

// MarkPaid handles POST /invoices/:id/pay (admin-equivalent).
func (h *BillingHandler) MarkPaid(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	invoice, err := h.billing.MarkPaid(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(invoice))
}

// Void handles POST /invoices/:id/void (admin-equivalent).
func (h *BillingHandler) Void(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	invoice, err := h.billing.Void(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(invoice))
}

// ListForPatient handles GET /patients/:id/invoices (admin-equivalent).
func (h *BillingHandler) ListForPatient(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	invoices, err := h.billing.ListByPatient(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(invoices))
}

// ListOwn handles GET /invoices (patient).
func (h *BillingHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	invoices, err := h.billing.ListByPatient(c.UserContext(), patient.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(invoices))
}
