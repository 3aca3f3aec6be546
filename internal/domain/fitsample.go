package domain

import "time"

// FitMetric enumerates synced activity metrics.
type FitMetric string

const (
	FitMetricSteps     FitMetric = "STEPS"
	FitMetricHeartRate FitMetric = "HEART_RATE"
)

// Valid reports whether m is a known metric.
func (m FitMetric) Valid() bool {
	switch m {
	case FitMetricSteps, FitMetricHeartRate:
		return true
	}
	return false
}

// FitSample is one activity data point pulled from the external fitness source.
type FitSample struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Metric    FitMetric `json:"metric"`
	Value     float64   `json:"value"`
	TakenAt   time.Time `json:"taken_at"`
	SyncedAt  time.Time `json:"synced_at"`
}
