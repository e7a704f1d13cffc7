package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface.
// Every query joins journal_lines to journal_entries and skips rejected
// entries, so a rejected posting never moves a report figure.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// AggregateTrialBalance returns per-account debit and credit totals over a
// date range. A zero from time means "since the beginning".
func (r *reportingRepository) AggregateTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_code = a.code
		WHERE e.entry_date >= $1
			AND e.entry_date <= $2
			AND e.status != 'rejected'
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		row.Net = row.Debit.Sub(row.Credit)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// AggregateByTypeExcludingClientFunds returns per-account net amounts for the
// given account type over a date range, skipping client-fund entries. Revenue
// accounts net credit minus debit, every other type debit minus credit.
func (r *reportingRepository) AggregateByTypeExcludingClientFunds(ctx context.Context, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error) {
	net := `SUM(l.debit - l.credit)`
	if accountType == domain.Revenue {
		net = `SUM(l.credit - l.debit)`
	}

	query := `
		SELECT a.code, a.name, ` + net + ` AS net
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_code = a.code
		WHERE e.entry_date >= $1
			AND e.entry_date <= $2
			AND e.status != 'rejected'
			AND e.is_client_fund = FALSE
			AND a.account_type = $3
		GROUP BY a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, from, to, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("error querying %s aggregation data: %w", accountType, err)
	}
	defer rows.Close()

	result := []domain.AccountAmount{}
	for rows.Next() {
		var row domain.AccountAmount
		if err := rows.Scan(&row.AccountCode, &row.Name, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("error scanning %s aggregation row: %w", accountType, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s aggregation rows: %w", accountType, err)
	}
	return result, nil
}

// AggregateMonthlyRevenue returns month-bucketed revenue totals over a date
// range, skipping client-fund entries.
func (r *reportingRepository) AggregateMonthlyRevenue(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error) {
	query := `
		SELECT
			to_char(e.entry_date, 'YYYY-MM') AS month,
			SUM(l.credit - l.debit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_code = a.code
		WHERE e.entry_date >= $1
			AND e.entry_date <= $2
			AND e.status != 'rejected'
			AND e.is_client_fund = FALSE
			AND a.account_type = 'REVENUE'
		GROUP BY month
		ORDER BY month;
	`

	return r.queryMonthlyPoints(ctx, query, from, to)
}

// AggregateBalancesByPrefix returns per-account net balances (debit minus
// credit) as of a date for accounts whose code matches the prefix.
func (r *reportingRepository) AggregateBalancesByPrefix(ctx context.Context, codePrefix string, asOf time.Time, excludeClientFunds bool) ([]domain.AccountAmount, error) {
	query := `
		SELECT a.code, a.name, SUM(l.debit - l.credit) AS net
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_code = a.code
		WHERE e.entry_date <= $1
			AND e.status != 'rejected'
			AND a.code LIKE $2
	`
	if excludeClientFunds {
		query += ` AND e.is_client_fund = FALSE`
	}
	query += `
		GROUP BY a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, asOf, codePrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("error querying balances for prefix %s: %w", codePrefix, err)
	}
	defer rows.Close()

	result := []domain.AccountAmount{}
	for rows.Next() {
		var row domain.AccountAmount
		if err := rows.Scan(&row.AccountCode, &row.Name, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("error scanning balance row for prefix %s: %w", codePrefix, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows for prefix %s: %w", codePrefix, err)
	}
	return result, nil
}

// SumNetByPrefix returns the total net movement (debit minus credit) as of a
// date across accounts whose code matches the prefix.
func (r *reportingRepository) SumNetByPrefix(ctx context.Context, codePrefix string, asOf time.Time, excludeClientFunds bool) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit - l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date <= $1
			AND e.status != 'rejected'
			AND l.account_code LIKE $2
	`
	if excludeClientFunds {
		query += ` AND e.is_client_fund = FALSE`
	}
	query += `;`

	var net decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, asOf, codePrefix+"%").Scan(&net); err != nil {
		return decimal.Zero, fmt.Errorf("error summing net for prefix %s: %w", codePrefix, err)
	}
	return net, nil
}

// AggregateMonthlyNetByParentCodes returns month-bucketed net movement (debit
// minus credit) over accounts whose parent code is in the list. Sub-ledger
// accounts are matched through their parent (the part before the '-').
func (r *reportingRepository) AggregateMonthlyNetByParentCodes(ctx context.Context, parentCodes []string, from, to time.Time, excludeClientFunds bool) ([]domain.MonthlyPoint, error) {
	query := `
		SELECT
			to_char(e.entry_date, 'YYYY-MM') AS month,
			SUM(l.debit - l.credit) AS amount
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.entry_date >= $1
			AND e.entry_date <= $2
			AND e.status != 'rejected'
			AND split_part(l.account_code, '-', 1) = ANY($3)
	`
	if excludeClientFunds {
		query += ` AND e.is_client_fund = FALSE`
	}
	query += `
		GROUP BY month
		ORDER BY month;
	`

	rows, err := r.Pool.Query(ctx, query, from, to, parentCodes)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly net for codes %v: %w", parentCodes, err)
	}
	defer rows.Close()

	return scanMonthlyPoints(rows)
}

func (r *reportingRepository) queryMonthlyPoints(ctx context.Context, query string, from, to time.Time) ([]domain.MonthlyPoint, error) {
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly series: %w", err)
	}
	defer rows.Close()

	return scanMonthlyPoints(rows)
}

func scanMonthlyPoints(rows pgx.Rows) ([]domain.MonthlyPoint, error) {
	result := []domain.MonthlyPoint{}
	for rows.Next() {
		var point domain.MonthlyPoint
		if err := rows.Scan(&point.Month, &point.Amount); err != nil {
			return nil, fmt.Errorf("error scanning monthly series row: %w", err)
		}
		result = append(result, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly series rows: %w", err)
	}
	return result, nil
}

// AggregateARAging returns per-customer invoiced, paid and age-bucketed
// outstanding totals as of a date. Each invoice's unpaid remainder lands in
// one bucket based on its age at asOf.
func (r *reportingRepository) AggregateARAging(ctx context.Context, asOf time.Time) ([]domain.ARAgingRow, error) {
	query := `
		SELECT
			i.customer_id,
			SUM(i.total) AS invoiced,
			SUM(p.paid) AS paid,
			SUM(CASE WHEN i.total - p.paid > 0 AND i.issued_at > $1 - INTERVAL '30 days' THEN i.total - p.paid ELSE 0 END) AS bucket_current,
			SUM(CASE WHEN i.total - p.paid > 0 AND i.issued_at <= $1 - INTERVAL '30 days' AND i.issued_at > $1 - INTERVAL '60 days' THEN i.total - p.paid ELSE 0 END) AS bucket_30,
			SUM(CASE WHEN i.total - p.paid > 0 AND i.issued_at <= $1 - INTERVAL '60 days' AND i.issued_at > $1 - INTERVAL '90 days' THEN i.total - p.paid ELSE 0 END) AS bucket_60,
			SUM(CASE WHEN i.total - p.paid > 0 AND i.issued_at <= $1 - INTERVAL '90 days' THEN i.total - p.paid ELSE 0 END) AS bucket_90_plus
		FROM invoices i
		CROSS JOIN LATERAL (
			SELECT COALESCE(SUM(amount), 0) AS paid
			FROM payments
			WHERE invoice_id = i.invoice_id AND paid_at <= $1
		) p
		WHERE i.issued_at <= $1
		GROUP BY i.customer_id
		ORDER BY i.customer_id;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying AR aging data: %w", err)
	}
	defer rows.Close()

	result := []domain.ARAgingRow{}
	for rows.Next() {
		var row domain.ARAgingRow
		if err := rows.Scan(
			&row.CustomerID,
			&row.Invoiced,
			&row.Paid,
			&row.Current,
			&row.Days30,
			&row.Days60,
			&row.Days90Plus,
		); err != nil {
			return nil, fmt.Errorf("error scanning AR aging row: %w", err)
		}
		row.Outstanding = row.Invoiced.Sub(row.Paid)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating AR aging rows: %w", err)
	}
	return result, nil
}

// FindStatementRows returns the journal lines touching a customer's or
// vehicle's accounts over a date range, oldest first so callers can accumulate
// a running balance. Lines qualify by account ownership or by the owning
// entry's link fields.
func (r *reportingRepository) FindStatementRows(ctx context.Context, customerID, vehicleID *int64, from, to time.Time) ([]domain.StatementRow, error) {
	var ownerClause string
	var ownerID int64
	switch {
	case customerID != nil:
		ownerClause = `(a.customer_id = $3 OR e.customer_id = $3)`
		ownerID = *customerID
	case vehicleID != nil:
		ownerClause = `(a.vehicle_id = $3 OR e.vehicle_id = $3)`
		ownerID = *vehicleID
	default:
		return nil, fmt.Errorf("statement requires a customer or vehicle")
	}

	query := `
		SELECT e.entry_id, e.entry_date, e.description, e.reference, l.account_code, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_code = a.code
		WHERE e.entry_date >= $1
			AND e.entry_date <= $2
			AND e.status != 'rejected'
			AND ` + ownerClause + `
		ORDER BY e.entry_date, e.created_at, l.line_id;
	`

	rows, err := r.Pool.Query(ctx, query, from, to, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying statement rows: %w", err)
	}
	defer rows.Close()

	result := []domain.StatementRow{}
	for rows.Next() {
		var row domain.StatementRow
		if err := rows.Scan(
			&row.EntryID,
			&row.EntryDate,
			&row.Description,
			&row.Reference,
			&row.AccountCode,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning statement row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}
	return result, nil
}
