package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// PatientRepository encapsulates patient profile persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Patient, error)
	List(ctx context.Context, limit, offset int) ([]domain.Patient, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository instantiates repository.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients (user_id, date_of_birth, gender, phone, address, blood_group)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		patient.UserID,
		patient.DateOfBirth,
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.BloodGroup,
	).Scan(&patient.ID, &patient.CreatedAt, &patient.UpdatedAt)
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	const query = `
        UPDATE patients SET date_of_birth=$1, gender=$2, phone=$3, address=$4, blood_group=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		patient.DateOfBirth,
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.BloodGroup,
		patient.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	const query = `
        SELECT id, user_id, date_of_birth, gender, phone, address, blood_group, created_at, updated_at
        FROM patients WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	const query = `
        SELECT id, user_id, date_of_birth, gender, phone, address, blood_group, created_at, updated_at
        FROM patients WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *patientRepository) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, date_of_birth, gender, phone, address, blood_group, created_at, updated_at
        FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Patient
	for rows.Next() {
		var patient domain.Patient
		if err := scanPatient(rows, &patient); err != nil {
			return nil, err
		}
		result = append(result, patient)
	}
	return result, rows.Err()
}

func (r *patientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Patient, error) {
	var patient domain.Patient
	if err := scanPatient(r.pool.QueryRow(ctx, query, arg), &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func scanPatient(row pgx.Row, patient *domain.Patient) error {
	return row.Scan(
		&patient.ID,
		&patient.UserID,
		&patient.DateOfBirth,
		&patient.Gender,
		&patient.Phone,
		&patient.Address,
		&patient.BloodGroup,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)
}
