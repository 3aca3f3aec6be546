package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// PrescriptionRepository encapsulates prescription persistence.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *domain.Prescription) error
	GetByID(ctx context.Context, id string) (*domain.Prescription, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID string, limit, offset int) ([]domain.Prescription, error)
}

type prescriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPrescriptionRepository instantiates repository.
func NewPrescriptionRepository(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepository{pool: pool}
}

// Create inserts the prescription and its items in one transaction.
func (r *prescriptionRepository) Create(ctx context.Context, prescription *domain.Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO prescriptions (patient_id, doctor_id, appointment_id, notes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.AppointmentID,
		prescription.Notes,
	).Scan(&prescription.ID, &prescription.CreatedAt); err != nil {
		return err
	}

	const insertItem = `
        INSERT INTO prescription_items (prescription_id, drug, dosage, frequency, duration_days, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	for i := range prescription.Items {
		item := &prescription.Items[i]
		item.PrescriptionID = prescription.ID
		if err := tx.QueryRow(ctx, insertItem,
			prescription.ID,
			item.Drug,
			item.Dosage,
			item.Frequency,
			item.DurationDays,
			item.Notes,
		).Scan(&item.ID, &item.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *prescriptionRepository) GetByID(ctx context.Context, id string) (*domain.Prescription, error) {
	const query = `
        SELECT id, patient_id, doctor_id, appointment_id, notes, created_at
        FROM prescriptions WHERE id=$1`
	var prescription domain.Prescription
	if err := scanPrescription(r.pool.QueryRow(ctx, query, id), &prescription); err != nil {
		return nil, err
	}
	items, err := r.listItems(ctx, []string{prescription.ID})
	if err != nil {
		return nil, err
	}
	prescription.Items = items[prescription.ID]
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Prescription, error) {
	return r.list(ctx, "patient_id", patientID, limit, offset)
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID string, limit, offset int) ([]domain.Prescription, error) {
	return r.list(ctx, "doctor_id", doctorID, limit, offset)
}

func (r *prescriptionRepository) list(ctx context.Context, column, id string, limit, offset int) ([]domain.Prescription, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT id, patient_id, doctor_id, appointment_id, notes, created_at
        FROM prescriptions WHERE %s=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, column)

	rows, err := r.pool.Query(ctx, query, id, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Prescription
	ids := []string{}
	for rows.Next() {
		var prescription domain.Prescription
		if err := scanPrescription(rows, &prescription); err != nil {
			return nil, err
		}
		result = append(result, prescription)
		ids = append(ids, prescription.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsByID, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Items = itemsByID[result[i].ID]
	}
	return result, nil
}

func (r *prescriptionRepository) listItems(ctx context.Context, prescriptionIDs []string) (map[string][]domain.PrescriptionItem, error) {
	result := make(map[string][]domain.PrescriptionItem)
	if len(prescriptionIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(prescriptionIDs))
	args := make([]any, len(prescriptionIDs))
	for i, id := range prescriptionIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`
        SELECT id, prescription_id, drug, dosage, frequency, duration_days, notes, created_at
        FROM prescription_items WHERE prescription_id IN (%s) ORDER BY created_at`,
		strings.Join(placeholders, ","))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.PrescriptionItem
		if err := rows.Scan(
			&item.ID,
			&item.PrescriptionID,
			&item.Drug,
			&item.Dosage,
			&item.Frequency,
			&item.DurationDays,
			&item.Notes,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[item.PrescriptionID] = append(result[item.PrescriptionID], item)
	}
	return result, rows.Err()
}

func scanPrescription(row pgx.Row, prescription *domain.Prescription) error {
	return row.Scan(
		&prescription.ID,
		&prescription.PatientID,
		&prescription.DoctorID,
		&prescription.AppointmentID,
		&prescription.Notes,
		&prescription.CreatedAt,
	)
}
