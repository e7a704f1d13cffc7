package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
)

// DepositReader defines read operations for customer deposits.
type DepositReader interface {
	// FindDepositByID retrieves a deposit by its identifier.
	FindDepositByID(ctx context.Context, depositID int64) (*domain.CustomerDeposit, error)

	// ListDepositsByCustomer retrieves all deposits recorded for a customer.
	ListDepositsByCustomer(ctx context.Context, customerID int64) ([]domain.CustomerDeposit, error)
}

// DepositWriter defines write operations for customer deposits.
type DepositWriter interface {
	// SaveDepositInTx persists a new deposit within an existing transaction
	// and returns its generated identifier.
	SaveDepositInTx(ctx context.Context, tx pgx.Tx, deposit domain.CustomerDeposit) (int64, error)

	// UpdateDepositStatusInTx transitions a deposit to a new status within
	// an existing transaction.
	UpdateDepositStatusInTx(ctx context.Context, tx pgx.Tx, depositID int64, status domain.DepositStatus, updatedBy string, updatedAt time.Time) error
}

// DepositRepositoryFacade combines all deposit repository interfaces.
type DepositRepositoryFacade interface {
	DepositReader
	DepositWriter
}

// InvoiceReader defines read operations for invoices and their payments.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its identifier.
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)

	// ListInvoicesByCustomer retrieves all invoices issued to a customer.
	ListInvoicesByCustomer(ctx context.Context, customerID int64) ([]domain.Invoice, error)

	// SumPaymentsByInvoice returns the total amount settled against an
	// invoice so far.
	SumPaymentsByInvoice(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
}

// InvoiceWriter defines write operations for invoices and their payments.
type InvoiceWriter interface {
	// SaveInvoiceInTx persists a new invoice within an existing transaction
	// and returns its generated identifier.
	SaveInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) (int64, error)

	// MarkInvoiceRecognizedInTx stamps revenue recognition on an invoice
	// within an existing transaction.
	MarkInvoiceRecognizedInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, recognizedAt time.Time, updatedBy string) error

	// UpdateInvoiceStatusInTx transitions an invoice to a new status within
	// an existing transaction.
	UpdateInvoiceStatusInTx(ctx context.Context, tx pgx.Tx, invoiceID int64, status domain.InvoiceStatus, updatedBy string, updatedAt time.Time) error

	// SavePaymentInTx persists a payment against an invoice within an
	// existing transaction and returns its generated identifier.
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) (int64, error)
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// ExpenseReader defines read operations for operational expenses.
type ExpenseReader interface {
	// FindExpenseByID retrieves an operational expense by its identifier.
	FindExpenseByID(ctx context.Context, expenseID int64) (*domain.OperationalExpense, error)

	// ListExpensesByVehicle retrieves all expenses attributed to a vehicle.
	ListExpensesByVehicle(ctx context.Context, vehicleID int64) ([]domain.OperationalExpense, error)
}

// ExpenseWriter defines write operations for operational expenses.
type ExpenseWriter interface {
	// SaveExpenseInTx persists a new operational expense within an existing
	// transaction and returns its generated identifier.
	SaveExpenseInTx(ctx context.Context, tx pgx.Tx, expense domain.OperationalExpense) (int64, error)
}

// ExpenseRepositoryFacade combines all expense repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
