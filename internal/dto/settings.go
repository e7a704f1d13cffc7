package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// UpdateBooksLockRequest moves (or clears) the books-lock cutoff date.
type UpdateBooksLockRequest struct {
	BooksLockedUntil *time.Time `json:"booksLockedUntil"`
}

// SettingsResponse defines the data returned for the ledger settings.
type SettingsResponse struct {
	BooksLockedUntil    *time.Time      `json:"booksLockedUntil,omitempty"`
	DefaultExchangeRate decimal.Decimal `json:"defaultExchangeRate"`
	AccountingMethod    string          `json:"accountingMethod"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy       string          `json:"lastUpdatedBy"`
}

// ToSettingsResponse converts domain.Settings to its DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		BooksLockedUntil:    s.BooksLockedUntil,
		DefaultExchangeRate: s.DefaultExchangeRate,
		AccountingMethod:    s.AccountingMethod,
		LastUpdatedAt:       s.LastUpdatedAt,
		LastUpdatedBy:       s.LastUpdatedBy,
	}
}
