package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// InvoiceRepository encapsulates billing persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus, paidAt *time.Time) error
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Invoice, error)
}

type invoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository instantiates repository.
func NewInvoiceRepository(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepository{pool: pool}
}

// Create inserts the invoice and its line items in one transaction.
func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertInvoice = `
        INSERT INTO invoices (patient_id, appointment_id, total_cents, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertInvoice,
		invoice.PatientID,
		invoice.AppointmentID,
		invoice.TotalCents,
		invoice.Status,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
		return err
	}

	const insertItem = `
        INSERT INTO invoice_items (invoice_id, description, amount_cents)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	for i := range invoice.Items {
		item := &invoice.Items[i]
		item.InvoiceID = invoice.ID
		if err := tx.QueryRow(ctx, insertItem, invoice.ID, item.Description, item.AmountCents).
			Scan(&item.ID, &item.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	const query = `
        SELECT id, patient_id, appointment_id, total_cents, status, paid_at, created_at, updated_at
        FROM invoices WHERE id=$1`
	var invoice domain.Invoice
	if err := scanInvoice(r.pool.QueryRow(ctx, query, id), &invoice); err != nil {
		return nil, err
	}
	items, err := r.listItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	invoice.Items = items
	return &invoice, nil
}

func (r *invoiceRepository) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus, paidAt *time.Time) error {
	const query = `UPDATE invoices SET status=$1, paid_at=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, paidAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *invoiceRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, patient_id, appointment_id, total_cents, status, paid_at, created_at, updated_at
        FROM invoices WHERE patient_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Invoice
	for rows.Next() {
		var invoice domain.Invoice
		if err := scanInvoice(rows, &invoice); err != nil {
			return nil, err
		}
		result = append(result, invoice)
	}
	return result, rows.Err()
}

func (r *invoiceRepository) listItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	const query = `
        SELECT id, invoice_id, description, amount_cents, created_at
        FROM invoice_items WHERE invoice_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InvoiceItem
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.AmountCents, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row, invoice *domain.Invoice) error {
	return row.Scan(
		&invoice.ID,
		&invoice.PatientID,
		&invoice.AppointmentID,
		&invoice.TotalCents,
		&invoice.Status,
		&invoice.PaidAt,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
	)
}
