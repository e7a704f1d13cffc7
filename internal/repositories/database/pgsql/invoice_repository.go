package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/mapping"
)

// PgxInvoiceRepository persists invoices and the payments settling them.
type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, customer_id, vehicle_id, invoice_type, total, currency_code, status, revenue_recognized_at, issued_at, created_at`

// SaveInvoiceInTx persists a new invoice within an existing transaction and
// returns its generated identifier.
func (r *PgxInvoiceRepository) SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error) {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (customer_id, vehicle_id, invoice_type, total, currency_code, status, revenue_recognized_at, issued_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING invoice_id;
	`

	var invoiceID int64
	err := tx.QueryRow(ctx, query,
		m.CustomerID,
		m.VehicleID,
		m.InvoiceType,
		m.Total,
		m.CurrencyCode,
		m.Status,
		m.RevenueRecognizedAt,
		m.IssuedAt,
		m.CreatedAt,
	).Scan(&invoiceID)
	if err != nil {
		return 0, fmt.Errorf("failed to save invoice for customer %d: %w", m.CustomerID, err)
	}
	return invoiceID, nil
}

// MarkInvoiceRecognizedInTx stamps revenue recognition on an invoice within an
// existing transaction.
func (r *PgxInvoiceRepository) MarkInvoiceRecognizedInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, recognizedAt time.Time, updatedBy string) error {
	query := `
		UPDATE invoices
		SET revenue_recognized_at = $2
		WHERE invoice_id = $1 AND revenue_recognized_at IS NULL;
	`

	tag, err := tx.Exec(ctx, query, invoiceID, recognizedAt)
	if err != nil {
		return fmt.Errorf("failed to mark invoice %d recognized: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %d missing or already recognized", apperrors.ErrConflict, invoiceID)
	}
	return nil
}

// UpdateInvoiceStatusInTx transitions an invoice to a new status within an
// existing transaction.
func (r *PgxInvoiceRepository) UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE invoices SET status = $2 WHERE invoice_id = $1;`

	tag, err := tx.Exec(ctx, query, invoiceID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update status for invoice %d: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SavePaymentInTx persists a payment against an invoice within an existing
// transaction and returns its generated identifier.
func (r *PgxInvoiceRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (int64, error) {
	query := `
		INSERT INTO payments (invoice_id, amount, method, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING payment_id;
	`

	var paymentID int64
	err := tx.QueryRow(ctx, query,
		payment.InvoiceID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
		payment.CreatedAt,
	).Scan(&paymentID)
	if err != nil {
		return 0, fmt.Errorf("failed to save payment for invoice %d: %w", payment.InvoiceID, err)
	}
	return paymentID, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CustomerID,
		&m.VehicleID,
		&m.InvoiceType,
		&m.Total,
		&m.CurrencyCode,
		&m.Status,
		&m.RevenueRecognizedAt,
		&m.IssuedAt,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

// FindInvoiceByID retrieves an invoice by its identifier.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`

	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %d: %w", invoiceID, err)
	}
	return invoice, nil
}

// ListInvoicesByCustomer retrieves all invoices issued to a customer, newest
// first.
func (r *PgxInvoiceRepository) ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE customer_id = $1
		ORDER BY issued_at DESC, invoice_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row for customer %d: %w", customerID, err)
		}
		invoices = append(invoices, *invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows for customer %d: %w", customerID, err)
	}
	return invoices, nil
}

// SumPaymentsByInvoice returns the total amount settled against an invoice so
// far.
func (r *PgxInvoiceRepository) SumPaymentsByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1;`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments for invoice %d: %w", invoiceID, err)
	}
	return total, nil
}
