package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// DateRangeParams defines the from/to query parameters shared by the
// range-based reports.
type DateRangeParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// AsOfParams defines the cutoff parameter for point-in-time reports.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// StatementParams defines the optional date range for account statements.
type StatementParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TrialBalanceResponse wraps the trial balance rows with their totals.
type TrialBalanceResponse struct {
	AsOf        time.Time                `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// PAndLResponse wraps the profit and loss report.
type PAndLResponse struct {
	From   time.Time          `json:"from"`
	To     time.Time          `json:"to"`
	Report domain.PAndLReport `json:"report"`
}

// MonthlySeriesResponse wraps a month-bucketed series report.
type MonthlySeriesResponse struct {
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Points []domain.MonthlyPoint `json:"points"`
}

// BalanceSheetResponse wraps the balance sheet report.
type BalanceSheetResponse struct {
	AsOf   time.Time                 `json:"asOf"`
	Report domain.BalanceSheetReport `json:"report"`
}

// ARAgingResponse wraps the accounts receivable aging report.
type ARAgingResponse struct {
	AsOf time.Time           `json:"asOf"`
	Rows []domain.ARAgingRow `json:"rows"`
}

// StatementResponse wraps a vehicle or client statement.
type StatementResponse struct {
	Statement domain.Statement `json:"statement"`
}
