package mapping

import (
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	"github.com/alwasl-auto/car_ledger_app/internal/models"
)

// ToModelCustomerDeposit converts a domain CustomerDeposit to its DB model.
func ToModelCustomerDeposit(d domain.CustomerDeposit) models.CustomerDeposit {
	return models.CustomerDeposit{
		DepositID:    d.DepositID,
		CustomerID:   d.CustomerID,
		VehicleID:    d.VehicleID,
		AuctionID:    d.AuctionID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		AmountBase:   d.AmountBase,
		Method:       d.Method,
		Reference:    d.Reference,
		Status:       models.DepositStatus(d.Status),
		ReceivedAt:   d.ReceivedAt,
		RefundedAt:   d.RefundedAt,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainCustomerDeposit converts a DB CustomerDeposit model to its domain form.
func ToDomainCustomerDeposit(m models.CustomerDeposit) domain.CustomerDeposit {
	return domain.CustomerDeposit{
		DepositID:    m.DepositID,
		CustomerID:   m.CustomerID,
		VehicleID:    m.VehicleID,
		AuctionID:    m.AuctionID,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		AmountBase:   m.AmountBase,
		Method:       m.Method,
		Reference:    m.Reference,
		Status:       domain.DepositStatus(m.Status),
		ReceivedAt:   m.ReceivedAt,
		RefundedAt:   m.RefundedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainInvoice converts a DB Invoice model to its domain form.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:           m.InvoiceID,
		CustomerID:          m.CustomerID,
		VehicleID:           m.VehicleID,
		InvoiceType:         m.InvoiceType,
		Total:               m.Total,
		CurrencyCode:        m.CurrencyCode,
		Status:              domain.InvoiceStatus(m.Status),
		RevenueRecognizedAt: m.RevenueRecognizedAt,
		IssuedAt:            m.IssuedAt,
		CreatedAt:           m.CreatedAt,
	}
}

// ToModelInvoice converts a domain Invoice to its DB model.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:           d.InvoiceID,
		CustomerID:          d.CustomerID,
		VehicleID:           d.VehicleID,
		InvoiceType:         d.InvoiceType,
		Total:               d.Total,
		CurrencyCode:        d.CurrencyCode,
		Status:              models.InvoiceStatus(d.Status),
		RevenueRecognizedAt: d.RevenueRecognizedAt,
		IssuedAt:            d.IssuedAt,
		CreatedAt:           d.CreatedAt,
	}
}

// ToDomainPayment converts a DB Payment model to its domain form.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID: m.PaymentID,
		InvoiceID: m.InvoiceID,
		Amount:    m.Amount,
		Method:    m.Method,
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
	}
}

// ToModelOperationalExpense converts a domain OperationalExpense to its DB model.
func ToModelOperationalExpense(d domain.OperationalExpense) models.OperationalExpense {
	return models.OperationalExpense{
		ExpenseID:        d.ExpenseID,
		VehicleID:        d.VehicleID,
		CustomerID:       d.CustomerID,
		AuctionID:        d.AuctionID,
		Category:         string(d.Category),
		OriginalAmount:   d.OriginalAmount,
		OriginalCurrency: d.OriginalCurrency,
		Amount:           d.Amount,
		ExchangeRateID:   d.ExchangeRateID,
		Paid:             d.Paid,
		PaidAt:           d.PaidAt,
		Description:      d.Description,
		Supplier:         d.Supplier,
		CreatedAt:        d.CreatedAt,
	}
}

// ToDomainOperationalExpense converts a DB OperationalExpense model to its domain form.
func ToDomainOperationalExpense(m models.OperationalExpense) domain.OperationalExpense {
	return domain.OperationalExpense{
		ExpenseID:        m.ExpenseID,
		VehicleID:        m.VehicleID,
		CustomerID:       m.CustomerID,
		AuctionID:        m.AuctionID,
		Category:         domain.ExpenseCategory(m.Category),
		OriginalAmount:   m.OriginalAmount,
		OriginalCurrency: m.OriginalCurrency,
		Amount:           m.Amount,
		ExchangeRateID:   m.ExchangeRateID,
		Paid:             m.Paid,
		PaidAt:           m.PaidAt,
		Description:      m.Description,
		Supplier:         m.Supplier,
		CreatedAt:        m.CreatedAt,
	}
}
