package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
)

// settingsService manages the singleton ledger settings row.
type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{
		settingsRepo: settingsRepo,
	}
}

// Ensure settingsService implements the portssvc.SettingsSvcFacade interface
var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings retrieves the current settings.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings")
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateBooksLockDate moves or clears the books-lock cutoff. Entries dated on
// or before the cutoff are created pending from that point on; existing
// entries are untouched.
func (s *settingsService) UpdateBooksLockDate(ctx context.Context, req dto.UpdateBooksLockRequest, requestingUserID string) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings.BooksLockedUntil = req.BooksLockedUntil
	settings.LastUpdatedAt = time.Now().UTC()
	settings.LastUpdatedBy = requestingUserID

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to update books lock date")
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	lock := "cleared"
	if req.BooksLockedUntil != nil {
		lock = req.BooksLockedUntil.Format("2006-01-02")
	}
	s.LogInfo(ctx, "Books lock date updated", slog.String("locked_until", lock), slog.String("by", requestingUserID))
	return settings, nil
}
