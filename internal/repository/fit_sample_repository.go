package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// FitSampleRepository encapsulates fitness sample persistence.
type FitSampleRepository interface {
	UpsertBatch(ctx context.Context, samples []domain.FitSample) error
	ListByPatient(ctx context.Context, patientID string, metric domain.FitMetric, from, to time.Time) ([]domain.FitSample, error)
}

type fitSampleRepository struct {
	pool *pgxpool.Pool
}

// NewFitSampleRepository instantiates repository.
func NewFitSampleRepository(pool *pgxpool.Pool) FitSampleRepository {
	return &fitSampleRepository{pool: pool}
}

// UpsertBatch writes samples idempotently; re-syncing a range overwrites
// values instead of duplicating rows.
func (r *fitSampleRepository) UpsertBatch(ctx context.Context, samples []domain.FitSample) error {
	if len(samples) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO fit_samples (patient_id, metric, value, taken_at, synced_at)
        VALUES ($1,$2,$3,$4,NOW())
        ON CONFLICT (patient_id, metric, taken_at)
        DO UPDATE SET value=EXCLUDED.value, synced_at=NOW()`
	for _, sample := range samples {
		if _, err := tx.Exec(ctx, query, sample.PatientID, sample.Metric, sample.Value, sample.TakenAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *fitSampleRepository) ListByPatient(ctx context.Context, patientID string, metric domain.FitMetric, from, to time.Time) ([]domain.FitSample, error) {
	const query = `
        SELECT id, patient_id, metric, value, taken_at, synced_at
        FROM fit_samples
        WHERE patient_id=$1 AND metric=$2 AND taken_at >= $3 AND taken_at <= $4
        ORDER BY taken_at`
	rows, err := r.pool.Query(ctx, query, patientID, metric, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FitSample
	for rows.Next() {
		var sample domain.FitSample
		if err := rows.Scan(
			&sample.ID,
			&sample.PatientID,
			&sample.Metric,
			&sample.Value,
			&sample.TakenAt,
			&sample.SyncedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}
