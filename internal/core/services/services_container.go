package services

import (
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCurrencyRepository(repos.CurrencyRepo),
	)

	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		container.Currency,
		cfg.BaseCurrency,
		WithSettingsReader(repos.SettingsRepo),
		WithDefaultRate(cfg.DefaultExchangeRate),
	)

	container.Subledger = NewSubledgerService(
		repos.SubledgerRepo,
		repos.AccountRepo,
		repos.TxManager,
		cfg.BaseCurrency,
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		repos.SettingsRepo,
		cfg.BaseCurrency,
	)

	container.Treasury = NewTreasuryService(
		repos.TxManager,
		container.Journal,
		container.Subledger,
		container.ExchangeRate,
		repos.DepositRepo,
		repos.InvoiceRepo,
		repos.ExpenseRepo,
		cfg.BaseCurrency,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.SubledgerRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade   = (*accountService)(nil)
	_ portssvc.JournalSvcFacade   = (*journalService)(nil)
	_ portssvc.TreasurySvcFacade  = (*treasuryService)(nil)
	_ portssvc.SubledgerSvcFacade = (*subledgerService)(nil)
)
