package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// MedicalRecordRepository encapsulates medical record persistence.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	Update(ctx context.Context, record *domain.MedicalRecord) error
	GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.MedicalRecord, error)
}

type medicalRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMedicalRecordRepository instantiates repository.
func NewMedicalRecordRepository(pool *pgxpool.Pool) MedicalRecordRepository {
	return &medicalRecordRepository{pool: pool}
}

// Create inserts the record and attachment references in one transaction.
func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO medical_records (patient_id, doctor_id, appointment_id, diagnosis, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		record.PatientID,
		record.DoctorID,
		record.AppointmentID,
		record.Diagnosis,
		record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return err
	}

	const insertAttachment = `
        INSERT INTO record_attachments (medical_record_id, storage_key, file_name, mime_type, size_bytes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	for i := range record.Attachments {
		att := &record.Attachments[i]
		att.MedicalRecordID = record.ID
		if err := tx.QueryRow(ctx, insertAttachment,
			record.ID,
			att.StorageKey,
			att.FileName,
			att.MimeType,
			att.SizeBytes,
		).Scan(&att.ID, &att.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *domain.MedicalRecord) error {
	const query = `
        UPDATE medical_records SET diagnosis=$1, notes=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, record.Diagnosis, record.Notes, record.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicalRecordRepository) GetByID(ctx context.Context, id string) (*domain.MedicalRecord, error) {
	const query = `
        SELECT id, patient_id, doctor_id, appointment_id, diagnosis, notes, created_at, updated_at
        FROM medical_records WHERE id=$1`
	var record domain.MedicalRecord
	if err := scanMedicalRecord(r.pool.QueryRow(ctx, query, id), &record); err != nil {
		return nil, err
	}
	attachments, err := r.listAttachments(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	record.Attachments = attachments
	return &record, nil
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.MedicalRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, patient_id, doctor_id, appointment_id, diagnosis, notes, created_at, updated_at
        FROM medical_records WHERE patient_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MedicalRecord
	for rows.Next() {
		var record domain.MedicalRecord
		if err := scanMedicalRecord(rows, &record); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *medicalRecordRepository) listAttachments(ctx context.Context, recordID string) ([]domain.RecordAttachment, error) {
	const query = `
        SELECT id, medical_record_id, storage_key, file_name, mime_type, size_bytes, created_at
        FROM record_attachments WHERE medical_record_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RecordAttachment
	for rows.Next() {
		var att domain.RecordAttachment
		if err := rows.Scan(
			&att.ID,
			&att.MedicalRecordID,
			&att.StorageKey,
			&att.FileName,
			&att.MimeType,
			&att.SizeBytes,
			&att.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

func scanMedicalRecord(row pgx.Row, record *domain.MedicalRecord) error {
	return row.Scan(
		&record.ID,
		&record.PatientID,
		&record.DoctorID,
		&record.AppointmentID,
		&record.Diagnosis,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
}
