package domain

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g. "OMR"
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	AuditFields
}
