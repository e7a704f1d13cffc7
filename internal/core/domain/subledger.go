package domain

import "time"

// ClientSubledger maps one customer to their five derived ledger accounts.
// Created lazily on first need; provisioning is idempotent.
type ClientSubledger struct {
	CustomerID                  int64     `json:"customerID"`
	DepositAccountCode          string    `json:"depositAccountCode"`          // liability
	AuctionAccountCode          string    `json:"auctionAccountCode"`          // asset (auction clearing)
	ServiceRevenueAccountCode   string    `json:"serviceRevenueAccountCode"`   // revenue
	LogisticsExpenseAccountCode string    `json:"logisticsExpenseAccountCode"` // expense
	ReceivableAccountCode       string    `json:"receivableAccountCode"`       // asset
	CurrencyCode                string    `json:"currencyCode"`
	CreatedAt                   time.Time `json:"createdAt"`
}

// VehicleSubledger maps one vehicle to its six derived ledger accounts, with
// an optional link back to the owning customer. The customer link may be
// attached after initial creation when the owner is discovered later.
type VehicleSubledger struct {
	VehicleID             int64     `json:"vehicleID"`
	CustomerID            *int64    `json:"customerID,omitempty"`
	DepositAccountCode    string    `json:"depositAccountCode"`    // liability
	AuctionAccountCode    string    `json:"auctionAccountCode"`    // asset (inventory/auction cost)
	FreightAccountCode    string    `json:"freightAccountCode"`    // expense
	CustomsAccountCode    string    `json:"customsAccountCode"`    // expense
	CommissionAccountCode string    `json:"commissionAccountCode"` // revenue
	StorageAccountCode    string    `json:"storageAccountCode"`    // expense
	CurrencyCode          string    `json:"currencyCode"`
	CreatedAt             time.Time `json:"createdAt"`
}
