package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// RecordsHandler exposes medical record endpoints.
type RecordsHandler struct {
	records  *service.MedicalRecordService
	patients *service.PatientService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(records *service.MedicalRecordService, patients *service.PatientService) *RecordsHandler {
	return &RecordsHandler{records: records, patients: patients}
}

// Create handles POST /records (doctor only).
func (h *RecordsHandler) Create(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.RecordCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	input := service.RecordCreateInput{
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Diagnosis:     req.Diagnosis,
		Notes:         req.Notes,
	}
	for _, att := range req.Attachments {
		input.Attachments = append(input.Attachments, service.AttachmentInput{
			StorageKey: att.StorageKey,
			FileName:   att.FileName,
			MimeType:   att.MimeType,
			SizeBytes:  att.SizeBytes,
		})
	}

	record, err := h.records.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(util.OK(record))
}

// Get handles GET /records/:id.
func (h *RecordsHandler) Get(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	record, err := h.records.GetByID(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(util.OK(record))
}

// Update handles PATCH /records/:id. Only the authoring doctor may amend.
func (h *RecordsHandler) Update(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.RecordUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	record, err := h.records.UpdateNotes(c.UserContext(), actor, c.Params("id"), req.Diagnosis, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(record))
}

// ListOwn handles GET /records for patients.
func (h *RecordsHandler) ListOwn(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	patient, err := h.patients.GetOwn(c.UserContext(), actor.UserID)
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	list, err := h.records.ListByPatient(c.UserContext(), patient.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(list))
}

// ListForPatient handles GET /patients/:id/records.
func (h *RecordsHandler) ListForPatient(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.records.ListByPatient(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(list))
}
