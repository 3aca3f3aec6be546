package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// AppointmentFilter captures listing parameters.
type AppointmentFilter struct {
	PatientID *string
	DoctorID  *string
	Statuses  []domain.AppointmentStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	Update(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	ListForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (patient_id, doctor_id, starts_at, ends_at, reason, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		appt.PatientID,
		appt.DoctorID,
		appt.StartsAt,
		appt.EndsAt,
		appt.Reason,
		appt.Status,
	).Scan(&appt.ID, &appt.CreatedAt, &appt.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	const query = `
        UPDATE appointments SET starts_at=$1, ends_at=$2, reason=$3, status=$4, cancelled_by=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		appt.StartsAt,
		appt.EndsAt,
		appt.Reason,
		appt.Status,
		appt.CancelledBy,
		appt.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, starts_at, ends_at, reason, status, cancelled_by, created_at, updated_at
        FROM appointments WHERE id=$1`
	var appt domain.Appointment
	if err := scanAppointment(r.pool.QueryRow(ctx, query, id), &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	base := `SELECT id, patient_id, doctor_id, starts_at, ends_at, reason, status, cancelled_by, created_at, updated_at
             FROM appointments`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.PatientID != nil {
		args = append(args, *filter.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id=$%d", len(args)))
	}
	if filter.DoctorID != nil {
		args = append(args, *filter.DoctorID)
		clauses = append(clauses, fmt.Sprintf("doctor_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("starts_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("starts_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY starts_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListForDoctorBetween returns non-cancelled appointments overlapping the
// interval, used by the slot generator.
func (r *appointmentRepository) ListForDoctorBetween(ctx context.Context, doctorID string, from, to time.Time) ([]domain.Appointment, error) {
	const query = `
        SELECT id, patient_id, doctor_id, starts_at, ends_at, reason, status, cancelled_by, created_at, updated_at
        FROM appointments
        WHERE doctor_id=$1 AND status <> $2 AND starts_at < $4 AND ends_at > $3
        ORDER BY starts_at`
	rows, err := r.pool.Query(ctx, query, doctorID, domain.AppointmentStatusCancelled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		if err := scanAppointment(rows, &appt); err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, rows.Err()
}

func scanAppointment(row pgx.Row, appt *domain.Appointment) error {
	return row.Scan(
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.StartsAt,
		&appt.EndsAt,
		&appt.Reason,
		&appt.Status,
		&appt.CancelledBy,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
}
