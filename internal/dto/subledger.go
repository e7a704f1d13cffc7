package dto

import (
	"time"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// ProvisionClientSubledgerRequest defines the data needed to provision a
// customer's sub-ledger accounts.
type ProvisionClientSubledgerRequest struct {
	CustomerID   int64  `json:"customerID" binding:"required"`
	CustomerName string `json:"customerName" binding:"required"`
	CurrencyCode string `json:"currencyCode"`
}

// ProvisionVehicleSubledgerRequest defines the data needed to provision a
// vehicle's sub-ledger accounts.
type ProvisionVehicleSubledgerRequest struct {
	VehicleID    int64  `json:"vehicleID" binding:"required"`
	VehicleLabel string `json:"vehicleLabel" binding:"required"`
	CustomerID   *int64 `json:"customerID"`
	CurrencyCode string `json:"currencyCode"`
}

// ClientSubledgerResponse defines the data returned for a client sub-ledger.
type ClientSubledgerResponse struct {
	CustomerID                  int64     `json:"customerID"`
	DepositAccountCode          string    `json:"depositAccountCode"`
	AuctionAccountCode          string    `json:"auctionAccountCode"`
	ServiceRevenueAccountCode   string    `json:"serviceRevenueAccountCode"`
	LogisticsExpenseAccountCode string    `json:"logisticsExpenseAccountCode"`
	ReceivableAccountCode       string    `json:"receivableAccountCode"`
	CurrencyCode                string    `json:"currencyCode"`
	CreatedAt                   time.Time `json:"createdAt"`
}

// VehicleSubledgerResponse defines the data returned for a vehicle sub-ledger.
type VehicleSubledgerResponse struct {
	VehicleID             int64     `json:"vehicleID"`
	CustomerID            *int64    `json:"customerID,omitempty"`
	DepositAccountCode    string    `json:"depositAccountCode"`
	AuctionAccountCode    string    `json:"auctionAccountCode"`
	FreightAccountCode    string    `json:"freightAccountCode"`
	CustomsAccountCode    string    `json:"customsAccountCode"`
	CommissionAccountCode string    `json:"commissionAccountCode"`
	StorageAccountCode    string    `json:"storageAccountCode"`
	CurrencyCode          string    `json:"currencyCode"`
	CreatedAt             time.Time `json:"createdAt"`
}

// ToClientSubledgerResponse converts a domain.ClientSubledger to its DTO.
func ToClientSubledgerResponse(s *domain.ClientSubledger) ClientSubledgerResponse {
	return ClientSubledgerResponse{
		CustomerID:                  s.CustomerID,
		DepositAccountCode:          s.DepositAccountCode,
		AuctionAccountCode:          s.AuctionAccountCode,
		ServiceRevenueAccountCode:   s.ServiceRevenueAccountCode,
		LogisticsExpenseAccountCode: s.LogisticsExpenseAccountCode,
		ReceivableAccountCode:       s.ReceivableAccountCode,
		CurrencyCode:                s.CurrencyCode,
		CreatedAt:                   s.CreatedAt,
	}
}

// ToVehicleSubledgerResponse converts a domain.VehicleSubledger to its DTO.
func ToVehicleSubledgerResponse(s *domain.VehicleSubledger) VehicleSubledgerResponse {
	return VehicleSubledgerResponse{
		VehicleID:             s.VehicleID,
		CustomerID:            s.CustomerID,
		DepositAccountCode:    s.DepositAccountCode,
		AuctionAccountCode:    s.AuctionAccountCode,
		FreightAccountCode:    s.FreightAccountCode,
		CustomsAccountCode:    s.CustomsAccountCode,
		CommissionAccountCode: s.CommissionAccountCode,
		StorageAccountCode:    s.StorageAccountCode,
		CurrencyCode:          s.CurrencyCode,
		CreatedAt:             s.CreatedAt,
	}
}
