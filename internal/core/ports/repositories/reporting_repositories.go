package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// ReportingRepository defines the aggregation queries backing ledger reports.
// All amounts are aggregated in the base currency.
type ReportingRepository interface {
	// AggregateTrialBalance returns per-account debit and credit totals over
	// a date range.
	AggregateTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)

	// AggregateByTypeExcludingClientFunds returns per-account net amounts for
	// the given account type over a date range, skipping client-fund entries.
	// Revenue accounts net credit minus debit, expense accounts debit minus
	// credit.
	AggregateByTypeExcludingClientFunds(ctx context.Context, accountType domain.AccountType, from, to time.Time) ([]domain.AccountAmount, error)

	// AggregateMonthlyRevenue returns month-bucketed revenue totals over a
	// date range, skipping client-fund entries.
	AggregateMonthlyRevenue(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error)

	// AggregateBalancesByPrefix returns per-account net balances (debit
	// minus credit) as of a date for accounts whose code matches the prefix,
	// optionally skipping client-fund entries.
	AggregateBalancesByPrefix(ctx context.Context, codePrefix string, asOf time.Time, excludeClientFunds bool) ([]domain.AccountAmount, error)

	// SumNetByPrefix returns the total net movement (debit minus credit) as
	// of a date across accounts whose code matches the prefix, optionally
	// skipping client-fund entries.
	SumNetByPrefix(ctx context.Context, codePrefix string, asOf time.Time, excludeClientFunds bool) (decimal.Decimal, error)

	// AggregateMonthlyNetByParentCodes returns month-bucketed net movement
	// (debit minus credit) over accounts whose parent code is in the list
	// (the code itself or any sub-account derived from it), optionally
	// skipping client-fund entries.
	AggregateMonthlyNetByParentCodes(ctx context.Context, parentCodes []string, from, to time.Time, excludeClientFunds bool) ([]domain.MonthlyPoint, error)

	// AggregateARAging returns per-customer invoiced, paid and age-bucketed
	// outstanding totals as of a date.
	AggregateARAging(ctx context.Context, asOf time.Time) ([]domain.ARAgingRow, error)

	// FindStatementRows returns the journal lines touching a customer's or
	// vehicle's accounts over a date range, ordered by entry date then
	// entry identifier. Exactly one of customerID and vehicleID is set.
	FindStatementRows(ctx context.Context, customerID, vehicleID *int64, from, to time.Time) ([]domain.StatementRow, error)
}
