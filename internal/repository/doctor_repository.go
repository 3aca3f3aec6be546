package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// DoctorRepository encapsulates doctor profile and availability persistence.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error)
	List(ctx context.Context, specialty string, limit, offset int) ([]domain.Doctor, error)
	ReplaceAvailability(ctx context.Context, doctorID string, windows []domain.AvailabilityWindow) error
	ListAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository instantiates repository.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO doctors (user_id, specialty, consultation_fee_cents, phone)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		doctor.UserID,
		doctor.Specialty,
		doctor.ConsultationFee,
		doctor.Phone,
	).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        UPDATE doctors SET specialty=$1, consultation_fee_cents=$2, phone=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		doctor.Specialty,
		doctor.ConsultationFee,
		doctor.Phone,
		doctor.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	const query = `
        SELECT id, user_id, specialty, consultation_fee_cents, phone, created_at, updated_at
        FROM doctors WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	const query = `
        SELECT id, user_id, specialty, consultation_fee_cents, phone, created_at, updated_at
        FROM doctors WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *doctorRepository) List(ctx context.Context, specialty string, limit, offset int) ([]domain.Doctor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT id, user_id, specialty, consultation_fee_cents, phone, created_at, updated_at
        FROM doctors`
	args := []any{}
	if specialty != "" {
		args = append(args, specialty)
		query += " WHERE specialty=$1"
	}
	args = append(args, limit, offset)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Doctor
	for rows.Next() {
		var doctor domain.Doctor
		if err := scanDoctor(rows, &doctor); err != nil {
			return nil, err
		}
		result = append(result, doctor)
	}
	return result, rows.Err()
}

// ReplaceAvailability swaps the full weekly schedule in one transaction.
func (r *doctorRepository) ReplaceAvailability(ctx context.Context, doctorID string, windows []domain.AvailabilityWindow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM doctor_availability WHERE doctor_id=$1`, doctorID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO doctor_availability (doctor_id, weekday, start_minute, end_minute, slot_minutes)
        VALUES ($1,$2,$3,$4,$5)`
	for _, w := range windows {
		if _, err := tx.Exec(ctx, insert, doctorID, int(w.Weekday), w.StartMinute, w.EndMinute, w.SlotMinutes); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *doctorRepository) ListAvailability(ctx context.Context, doctorID string) ([]domain.AvailabilityWindow, error) {
	const query = `
        SELECT id, doctor_id, weekday, start_minute, end_minute, slot_minutes, created_at, updated_at
        FROM doctor_availability WHERE doctor_id=$1 ORDER BY weekday, start_minute`

	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AvailabilityWindow
	for rows.Next() {
		var w domain.AvailabilityWindow
		var weekday int
		if err := rows.Scan(
			&w.ID,
			&w.DoctorID,
			&weekday,
			&w.StartMinute,
			&w.EndMinute,
			&w.SlotMinutes,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		w.Weekday = time.Weekday(weekday)
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *doctorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := scanDoctor(r.pool.QueryRow(ctx, query, arg), &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func scanDoctor(row pgx.Row, doctor *domain.Doctor) error {
	return row.Scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Specialty,
		&doctor.ConsultationFee,
		&doctor.Phone,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
	)
}
