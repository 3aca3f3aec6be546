package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// DoctorsHandler exposes doctor profile, availability and slot endpoints.
type DoctorsHandler struct {
	doctors      *service.DoctorService
	appointments *service.AppointmentService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(doctors *service.DoctorService, appointments *service.AppointmentService) *DoctorsHandler {
	return &DoctorsHandler{doctors: doctors, appointments: appointments}
}

// List handles GET /doctors.
func (h *DoctorsHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	doctors, err := h.doctors.List(c.UserContext(), c.Query("specialty"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(doctors))
}

// Get handles GET /doctors/:id.
func (h *DoctorsHandler) Get(c *fiber.Ctx) error {
	doctor, err := h.doctors.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(doctor))
}

// Update handles PUT /doctors/:id (admin-equivalent).
func (h *DoctorsHandler) Update(c *fiber.Ctx) error {
	var req dto.DoctorUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	doctor, err := h.doctors.Update(c.UserContext(), c.Params("id"), req.Specialty, req.Phone, req.ConsultationFee)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(doctor))
}

// SetOwnAvailability handles PUT /doctors/me/availability.
func (h *DoctorsHandler) SetOwnAvailability(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	doctor, err := h.doctors.GetOwn(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	return h.setAvailability(c, doctor.ID)
}

// SetAvailability handles PUT /doctors/:id/availability (admin-equivalent).
func (h *DoctorsHandler) SetAvailability(c *fiber.Ctx) error {
	return h.setAvailability(c, c.Params("id"))
}

func (h *DoctorsHandler) setAvailability(c *fiber.Ctx, doctorID string) error {
	var req dto.AvailabilityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	inputs := make([]service.AvailabilityInput, 0, len(req.Windows))
	for _, w := range req.Windows {
		inputs = append(inputs, service.AvailabilityInput{
			Weekday:     time.Weekday(w.Weekday),
			StartMinute: w.StartMinute,
			EndMinute:   w.EndMinute,
			SlotMinutes: w.SlotMinutes,
		})
	}
	windows, err := h.doctors.SetAvailability(c.UserContext(), doctorID, inputs)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(windows))
}

// GetAvailability handles GET /doctors/:id/availability.
func (h *DoctorsHandler) GetAvailability(c *fiber.Ctx) error {
	windows, err := h.doctors.GetAvailability(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(windows))
}

// Slots handles GET /doctors/:id/slots?date=YYYY-MM-DD.
func (h *DoctorsHandler) Slots(c *fiber.Ctx) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return err
	}
	if date == nil {
		return util.NewValidationError("date is required", nil)
	}
	slots, err := h.appointments.Slots(c.UserContext(), c.Params("id"), *date)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(slots))
}
