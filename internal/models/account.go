package models

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the accounts table row. Code is the primary key; customer_id and
// vehicle_id are nullable ownership tags for derived sub-ledger accounts.
type Account struct {
	Code         string      `db:"code"`
	Name         string      `db:"name"`
	AccountType  AccountType `db:"account_type"`
	CurrencyCode string      `db:"currency_code"`
	IsActive     bool        `db:"is_active"`
	CustomerID   *int64      `db:"customer_id"`
	VehicleID    *int64      `db:"vehicle_id"`
	AuditFields
}
