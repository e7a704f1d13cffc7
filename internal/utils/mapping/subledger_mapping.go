package mapping

import (
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
)

// ToDomainClientSubledger converts a model ClientSubledger to its domain form.
func ToDomainClientSubledger(m models.ClientSubledger) domain.ClientSubledger {
	return domain.ClientSubledger{
		CustomerID:                  m.CustomerID,
		DepositAccountCode:          m.DepositAccountCode,
		AuctionAccountCode:          m.AuctionAccountCode,
		ServiceRevenueAccountCode:   m.ServiceRevenueAccountCode,
		LogisticsExpenseAccountCode: m.LogisticsExpenseAccountCode,
		ReceivableAccountCode:       m.ReceivableAccountCode,
		CurrencyCode:                m.CurrencyCode,
		CreatedAt:                   m.CreatedAt,
	}
}

// ToModelClientSubledger converts a domain ClientSubledger to its model form.
func ToModelClientSubledger(d domain.ClientSubledger) models.ClientSubledger {
	return models.ClientSubledger{
		CustomerID:                  d.CustomerID,
		DepositAccountCode:          d.DepositAccountCode,
		AuctionAccountCode:          d.AuctionAccountCode,
		ServiceRevenueAccountCode:   d.ServiceRevenueAccountCode,
		LogisticsExpenseAccountCode: d.LogisticsExpenseAccountCode,
		ReceivableAccountCode:       d.ReceivableAccountCode,
		CurrencyCode:                d.CurrencyCode,
		CreatedAt:                   d.CreatedAt,
	}
}

// ToDomainVehicleSubledger converts a model VehicleSubledger to its domain form.
func ToDomainVehicleSubledger(m models.VehicleSubledger) domain.VehicleSubledger {
	return domain.VehicleSubledger{
		VehicleID:             m.VehicleID,
		CustomerID:            m.CustomerID,
		DepositAccountCode:    m.DepositAccountCode,
		AuctionAccountCode:    m.AuctionAccountCode,
		FreightAccountCode:    m.FreightAccountCode,
		CustomsAccountCode:    m.CustomsAccountCode,
		CommissionAccountCode: m.CommissionAccountCode,
		StorageAccountCode:    m.StorageAccountCode,
		CurrencyCode:          m.CurrencyCode,
		CreatedAt:             m.CreatedAt,
	}
}

// ToModelVehicleSubledger converts a domain VehicleSubledger to its model form.
func ToModelVehicleSubledger(d domain.VehicleSubledger) models.VehicleSubledger {
	return models.VehicleSubledger{
		VehicleID:             d.VehicleID,
		CustomerID:            d.CustomerID,
		DepositAccountCode:    d.DepositAccountCode,
		AuctionAccountCode:    d.AuctionAccountCode,
		FreightAccountCode:    d.FreightAccountCode,
		CustomsAccountCode:    d.CustomsAccountCode,
		CommissionAccountCode: d.CommissionAccountCode,
		StorageAccountCode:    d.StorageAccountCode,
		CurrencyCode:          d.CurrencyCode,
		CreatedAt:             d.CreatedAt,
	}
}
