package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager        TransactionManager
	AccountRepo      AccountRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	SubledgerRepo    SubledgerRepositoryFacade
	DepositRepo      DepositRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	SettingsRepo     SettingsRepositoryFacade
	ReportingRepo    ReportingRepository
}
