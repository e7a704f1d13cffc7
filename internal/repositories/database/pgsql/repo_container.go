package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	subledgerRepo := newPgxSubledgerRepository(dbPool)
	depositRepo := newPgxDepositRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		AccountRepo:      accountRepo,
		CurrencyRepo:     currencyRepo,
		ExchangeRateRepo: exchangeRateRepo,
		JournalRepo:      journalRepo,
		SubledgerRepo:    subledgerRepo,
		DepositRepo:      depositRepo,
		InvoiceRepo:      invoiceRepo,
		ExpenseRepo:      expenseRepo,
		SettingsRepo:     settingsRepo,
		ReportingRepo:    reportingRepo,
	}
}
