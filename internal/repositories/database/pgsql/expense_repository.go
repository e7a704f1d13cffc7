package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/mapping"
)

// PgxExpenseRepository persists operational expenses.
type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, vehicle_id, customer_id, auction_id, category, original_amount, original_currency, amount, exchange_rate_id, paid, paid_at, description, supplier, created_at`

// SaveExpenseInTx persists a new operational expense within an existing
// transaction and returns its generated identifier.
func (r *PgxExpenseRepository) SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.OperationalExpense) (int64, error) {
	m := mapping.ToModelOperationalExpense(expense)

	query := `
		INSERT INTO operational_expenses (vehicle_id, customer_id, auction_id, category, original_amount, original_currency, amount, exchange_rate_id, paid, paid_at, description, supplier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING expense_id;
	`

	var expenseID int64
	err := tx.QueryRow(ctx, query,
		m.VehicleID,
		m.CustomerID,
		m.AuctionID,
		m.Category,
		m.OriginalAmount,
		m.OriginalCurrency,
		m.Amount,
		m.ExchangeRateID,
		m.Paid,
		m.PaidAt,
		m.Description,
		m.Supplier,
		m.CreatedAt,
	).Scan(&expenseID)
	if err != nil {
		return 0, fmt.Errorf("failed to save operational expense: %w", err)
	}
	return expenseID, nil
}

func scanExpense(row pgx.Row) (*domain.OperationalExpense, error) {
	var m models.OperationalExpense
	err := row.Scan(
		&m.ExpenseID,
		&m.VehicleID,
		&m.CustomerID,
		&m.AuctionID,
		&m.Category,
		&m.OriginalAmount,
		&m.OriginalCurrency,
		&m.Amount,
		&m.ExchangeRateID,
		&m.Paid,
		&m.PaidAt,
		&m.Description,
		&m.Supplier,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	expense := mapping.ToDomainOperationalExpense(m)
	return &expense, nil
}

// FindExpenseByID retrieves an operational expense by its identifier.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID int64) (*domain.OperationalExpense, error) {
	query := `SELECT ` + expenseColumns + ` FROM operational_expenses WHERE expense_id = $1;`

	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %d: %w", expenseID, err)
	}
	return expense, nil
}

// ListExpensesByVehicle retrieves all expenses attributed to a vehicle, newest
// first.
func (r *PgxExpenseRepository) ListExpensesByVehicle(ctx context.Context, vehicleID int64) ([]domain.OperationalExpense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM operational_expenses
		WHERE vehicle_id = $1
		ORDER BY created_at DESC, expense_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for vehicle %d: %w", vehicleID, err)
	}
	defer rows.Close()

	expenses := []domain.OperationalExpense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row for vehicle %d: %w", vehicleID, err)
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows for vehicle %d: %w", vehicleID, err)
	}
	return expenses, nil
}
