package domain

import "github.com/shopspring/decimal"

// JournalLine is a single debit or credit against one account, owned by
// exactly one journal entry (lines are destroyed with their entry).
// Debit and credit are non-negative; by convention exactly one of the two is
// nonzero per line.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountCode  string          `json:"accountCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode"`
}
