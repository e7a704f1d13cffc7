package models

import "time"

// ClientSubledger is the client_account_structures table row.
type ClientSubledger struct {
	CustomerID                  int64     `db:"customer_id"`
	DepositAccountCode          string    `db:"deposit_account_code"`
	AuctionAccountCode          string    `db:"auction_account_code"`
	ServiceRevenueAccountCode   string    `db:"service_revenue_account_code"`
	LogisticsExpenseAccountCode string    `db:"logistics_expense_account_code"`
	ReceivableAccountCode       string    `db:"receivable_account_code"`
	CurrencyCode                string    `db:"currency_code"`
	CreatedAt                   time.Time `db:"created_at"`
}

// VehicleSubledger is the vehicle_account_structures table row.
type VehicleSubledger struct {
	VehicleID             int64     `db:"vehicle_id"`
	CustomerID            *int64    `db:"customer_id"`
	DepositAccountCode    string    `db:"deposit_account_code"`
	AuctionAccountCode    string    `db:"auction_account_code"`
	FreightAccountCode    string    `db:"freight_account_code"`
	CustomsAccountCode    string    `db:"customs_account_code"`
	CommissionAccountCode string    `db:"commission_account_code"`
	StorageAccountCode    string    `db:"storage_account_code"`
	CurrencyCode          string    `db:"currency_code"`
	CreatedAt             time.Time `db:"created_at"`
}
