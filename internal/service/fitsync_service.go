package service

import (
	"context"
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// FitFetcher pulls activity samples from the external fitness source. The
// OAuth handshake and data transport live behind this interface; the service
// only persists what comes back.
type FitFetcher interface {
	Fetch(ctx context.Context, patientID string, from, to time.Time) ([]domain.FitSample, error)
}

// FitSyncService syncs and serves fitness samples for patients.
type FitSyncService struct {
	samples  repository.FitSampleRepository
	patients repository.PatientRepository
	fetcher  FitFetcher
}

// NewFitSyncService constructs the service. fetcher may be nil when the
// integration is disabled.
func NewFitSyncService(samples repository.FitSampleRepository, patients repository.PatientRepository, fetcher FitFetcher) *FitSyncService {
	return &FitSyncService{samples: samples, patients: patients, fetcher: fetcher}
}

// SyncNow pulls samples for the caller's date range and upserts them.
func (s *FitSyncService) SyncNow(ctx context.Context, actor Actor, from, to time.Time) (int, error) {
	if s.fetcher == nil {
		return 0, apperrors.NewValidationError("fitness sync is not enabled", nil)
	}
	if !from.Before(to) {
		return 0, apperrors.NewValidationError("invalid date range", nil)
	}

	patient, err := s.patients.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return 0, apperrors.NewForbidden("patient profile required")
	}

	samples, err := s.fetcher.Fetch(ctx, patient.ID, from, to)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	for i := range samples {
		samples[i].PatientID = patient.ID
	}
	if err := s.samples.UpsertBatch(ctx, samples); err != nil {
		return 0, apperrors.MapError(err)
	}
	return len(samples), nil
}

// ListSamples returns the caller's samples for a metric and range.
func (s *FitSyncService) ListSamples(ctx context.Context, actor Actor, metric domain.FitMetric, from, to time.Time) ([]domain.FitSample, error) {
	patient, err := s.patients.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.NewForbidden("patient profile required")
	}
	samples, err := s.samples.ListByPatient(ctx, patient.ID, metric, from, to)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return samples, nil
}

// StubFetcher returns no samples; wired when no real fetcher is configured
// but the endpoints should still respond.
type StubFetcher struct{}

// Fetch implements FitFetcher.
func (StubFetcher) Fetch(_ context.Context, _ string, _, _ time.Time) ([]domain.FitSample, error) {
	return nil, nil
}
