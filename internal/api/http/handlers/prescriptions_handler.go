package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// PrescriptionsHandler exposes prescription endpoints.
type PrescriptionsHandler struct {
	prescriptions *service.PrescriptionService
	patients      *service.PatientService
}

// NewPrescriptionsHandler constructs handler.
func NewPrescriptionsHandler(prescriptions *service.PrescriptionService, patients *service.PatientService) *PrescriptionsHandler {
	return &PrescriptionsHandler{prescriptions: prescriptions, patients: patients}
}

// Create handles POST /prescriptions (doctor only).
func (h *PrescriptionsHandler) Create(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.PrescriptionCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	input := service.PrescriptionCreateInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.PrescriptionItemInput{
			Drug:         item.Drug,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			DurationDays: item.DurationDays,
			Notes:        item.Notes,
		})
	}

	prescription, err := h.prescriptions.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(util.OK(prescription))
}

// Get handles GET /prescriptions/:id.
func (h *PrescriptionsHandler) Get(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	prescription, err := h.prescriptions.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(prescription))
}

// ListOwn handles GET /prescriptions. Patients see theirs; doctors see the
// ones they issued.
func (h *PrescriptionsHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)

	switch actor.Role {
	case domain.RolePatient:
		patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
		if err != nil {
			return err
		}
		list, err := h.prescriptions.ListByPatient(c.UserContext(), patient.ID, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(util.OK(list))
	case domain.RoleDoctor:
		list, err := h.prescriptions.ListOwnByDoctor(c.UserContext(), actor.UserID, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(util.OK(list))
	}
	return util.NewForbidden("use the patient listing endpoint")
}

// ListForPatient handles GET /patients/:id/prescriptions (admin-equivalent).
func (h *PrescriptionsHandler) ListForPatient(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.prescriptions.ListByPatient(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(list))
}
