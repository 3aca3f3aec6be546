package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// AppointmentsHandler exposes booking endpoints.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
	patients     *service.PatientService
	doctors      *service.DoctorService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService, patients *service.PatientService, doctors *service.DoctorService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments, patients: patients, doctors: doctors}
}

// Book handles POST /appointments. Patients book for themselves; the
// patient_id field is only honored for admin-equivalent callers.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.AppointmentBookRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	patientID := req.PatientID
	if actor.Role == domain.RolePatient {
		patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
		if err != nil {
			return err
		}
		patientID = patient.ID
	}
	if patientID == "" {
		return util.NewValidationError("patient_id is required", nil)
	}

	appt, err := h.appointments.Book(c.UserContext(), actor, service.BookInput{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		StartsAt:  req.StartsAt,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(util.OK(appt))
}

// Get handles GET /appointments/:id.
func (h *AppointmentsHandler) Get(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	appt, err := h.appointments.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(appt))
}

// Cancel handles POST /appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	appt, err := h.appointments.Cancel(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(appt))
}

// Complete handles POST /appointments/:id/complete (doctor only).
func (h *AppointmentsHandler) Complete(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	appt, err := h.appointments.Complete(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(appt))
}

// ListOwn handles GET /appointments. Patients see their own; doctors see
// their schedule.
func (h *AppointmentsHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	filter, err := parseAppointmentFilter(c)
	if err != nil {
		return err
	}

	switch actor.Role {
	case domain.RolePatient:
		patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
		if err != nil {
			return err
		}
		appts, err := h.appointments.ListForPatient(c.UserContext(), patient.ID, filter)
		if err != nil {
			return err
		}
		return c.JSON(util.OK(appts))
	case domain.RoleDoctor:
		doctor, err := h.doctors.GetOwn(c.UserContext(), actor.UserID)
		if err != nil {
			return err
		}
		appts, err := h.appointments.ListForDoctor(c.UserContext(), doctor.ID, filter)
		if err != nil {
			return err
		}
		return c.JSON(util.OK(appts))
	}
	return util.NewForbidden("use the admin listing endpoints")
}

// ListForPatient handles GET /patients/:id/appointments (admin-equivalent).
func (h *AppointmentsHandler) ListForPatient(c *fiber.Ctx) error {
	filter, err := parseAppointmentFilter(c)
	if err != nil {
		return err
	}
	appts, err := h.appointments.ListForPatient(c.UserContext(), c.Params("id"), filter)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(appts))
}

// ListForDoctor handles GET /doctors/:id/appointments (admin-equivalent).
func (h *AppointmentsHandler) ListForDoctor(c *fiber.Ctx) error {
	filter, err := parseAppointmentFilter(c)
	if err != nil {
		return err
	}
	appts, err := h.appointments.ListForDoctor(c.UserContext(), c.Params("id"), filter)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(appts))
}

func parseAppointmentFilter(c *fiber.Ctx) (service.ListFilter, error) {
	limit, offset := pagination(c)
	filter := service.ListFilter{Limit: limit, Offset: offset}

	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return filter, err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to
	return filter, nil
}
