package mapping

import (
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
)

// ToModelSettings converts domain Settings to its DB model.
func ToModelSettings(d domain.Settings) models.Settings {
	return models.Settings{
		BooksLockedUntil:    d.BooksLockedUntil,
		DefaultExchangeRate: d.DefaultExchangeRate,
		AccountingMethod:    d.AccountingMethod,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettings converts a DB Settings model to its domain form.
func ToDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings{
		BooksLockedUntil:    m.BooksLockedUntil,
		DefaultExchangeRate: m.DefaultExchangeRate,
		AccountingMethod:    m.AccountingMethod,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
