package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/pkg/util"
)

// FitSyncHandler exposes fitness sample sync and listing for patients.
type FitSyncHandler struct {
	fitsync *service.FitSyncService
}

// NewFitSyncHandler constructs handler.
func NewFitSyncHandler(fitsync *service.FitSyncService) *FitSyncHandler {
	return &FitSyncHandler{fitsync: fitsync}
}

// Sync handles POST /fit/sync.
func (h *FitSyncHandler) Sync(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}
	var req dto.FitSyncRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	count, err := h.fitsync.SyncNow(c.UserContext(), actor, req.From, req.To)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(fiber.Map{"synced": count}))
}

// ListSamples handles GET /fit/samples?metric=STEPS&from=...&to=...
func (h *FitSyncHandler) ListSamples(c *fiber.Ctx) error {
	actor, err := sessionActor(c)
	if err != nil {
		return err
	}

	metric := domain.FitMetric(c.Query("metric", string(domain.FitMetricSteps)))
	if !metric.Valid() {
		return util.NewValidationError("unknown metric", fiber.Map{"metric": metric})
	}

	from, err := parseDateQuery(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if from == nil {
		weekAgo := now.AddDate(0, 0, -7)
		from = &weekAgo
	}
	if to == nil {
		to = &now
	}

	samples, err := h.fitsync.ListSamples(c.UserContext(), actor, metric, *from, *to)
	if err != nil {
		return err
	}
	return c.JSON(util.OK(samples))
}
