package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account in a trial balance report.
// Net is debit minus credit.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report. Client-fund entries are
// excluded from every figure.
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// MonthlyPoint is one bucket of a monthly time series.
type MonthlyPoint struct {
	Month  string          `json:"month"` // "2006-01"
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheetReport splits client deposits (trust funds, computed across all
// entries) out of the liability side; equity is derived as the balancing figure.
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	ClientDeposits   decimal.Decimal `json:"clientDeposits"`
	OtherLiabilities decimal.Decimal `json:"otherLiabilities"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	Equity           decimal.Decimal `json:"equity"`
}

// ARAgingRow is one customer's receivable position bucketed by invoice age.
type ARAgingRow struct {
	CustomerID  int64           `json:"customerID"`
	Invoiced    decimal.Decimal `json:"invoiced"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Current     decimal.Decimal `json:"current"` // < 30 days
	Days30      decimal.Decimal `json:"days30"`
	Days60      decimal.Decimal `json:"days60"`
	Days90Plus  decimal.Decimal `json:"days90Plus"`
}

// StatementRow is one ledger line in a vehicle or client statement.
// RunningBalance is the cumulative debit minus credit in chronological order.
type StatementRow struct {
	EntryID        string          `json:"entryID"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	AccountCode    string          `json:"accountCode"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Statement is a chronological ledger extract scoped to one vehicle or client,
// with per-category subtotals mapped through the entity's sub-ledger codes.
type Statement struct {
	Rows           []StatementRow             `json:"rows"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
	FinalBalance   decimal.Decimal            `json:"finalBalance"`
}
