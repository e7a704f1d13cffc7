package services

import (
	"context"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// All reports aggregate in the base currency; revenue and expense figures
// exclude client-fund entries.
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// MonthlyRevenueSeries generates month-bucketed revenue totals for a period
	MonthlyRevenueSeries(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error)

	// BalanceSheet generates a balance sheet as of a specific date, with
	// client deposits split out of the other liabilities
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// ARAging generates the accounts receivable aging report as of a date
	ARAging(ctx context.Context, asOf time.Time) ([]domain.ARAgingRow, error)

	// VehicleStatement generates a chronological statement of a vehicle's
	// ledger activity with running balance and category subtotals
	VehicleStatement(ctx context.Context, vehicleID int64, from, to *time.Time) (*domain.Statement, error)

	// ClientStatement generates a chronological statement of a customer's
	// ledger activity with running balance and category subtotals
	ClientStatement(ctx context.Context, customerID int64, from, to *time.Time) (*domain.Statement, error)

	// CashFlow generates month-bucketed net movement on the bank and cash
	// accounts for a period
	CashFlow(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error)
}
