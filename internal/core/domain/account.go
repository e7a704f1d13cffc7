package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one entry in the chart of accounts. The code is the
// natural key; sub-ledger accounts derive their codes from a canonical parent
// code plus the owning customer or vehicle id (see utils/accounting).
// Accounts are never mutated after creation except for deactivation.
type Account struct {
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	IsActive     bool        `json:"isActive"`
	// Weak ownership references, used only for filtering and reporting.
	CustomerID *int64 `json:"customerID,omitempty"`
	VehicleID  *int64 `json:"vehicleID,omitempty"`
	AuditFields
}
