package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// PatientsHandler exposes patient profile endpoints.
type PatientsHandler struct {
	patients *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patients *service.PatientService) *PatientsHandler {
	return &PatientsHandler{patients: patients}
}

// GetOwn handles GET /patients/me.
func (h *PatientsHandler) GetOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(patient))
}

// UpdateOwn handles PUT /patients/me.
func (h *PatientsHandler) UpdateOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.PatientUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patient, err := h.patients.UpdateOwnProfile(c.UserContext(), actor.UserID, profileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(patient))
}

// Get handles GET /patients/:id (admin-equivalent).
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	patient, err := h.patients.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(patient))
}

// Update handles PUT /patients/:id (admin-equivalent).
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	var req dto.PatientUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patient, err := h.patients.UpdateProfile(c.UserContext(), c.Params("id"), profileInput(req))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(patient))
}

// List handles GET /patients (admin-equivalent).
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	patients, err := h.patients.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(patients))
}

func profileInput(req dto.PatientUpdateRequest) service.PatientProfileInput {
	return service.PatientProfileInput{
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
		BloodGroup:  req.BloodGroup,
	}
}
