package repositories

import (
	"context"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// SettingsReader defines read operations for ledger settings.
type SettingsReader interface {
	// GetSettings retrieves the singleton settings row.
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// SettingsWriter defines write operations for ledger settings.
type SettingsWriter interface {
	// UpdateSettings replaces the singleton settings row.
	UpdateSettings(ctx context.Context, settings domain.Settings) error
}

// SettingsRepositoryFacade combines all settings repository interfaces.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
