package services

import (
	"context"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// SettingsSvcFacade manages the singleton ledger settings row.
type SettingsSvcFacade interface {
	// GetSettings retrieves the current settings.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// UpdateBooksLockDate moves or clears the books-lock cutoff. Entries
	// dated on or before the cutoff are created pending.
	UpdateBooksLockDate(ctx context.Context, req dto.UpdateBooksLockRequest, requestingUserID string) (*domain.Settings, error)
}
