package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portsrepo "github.com/alwasl-auto/car_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/utils/accounting"
)

// reportingService implements the ReportingService interface. The heavy
// lifting happens in SQL; this layer assembles report structures and derives
// the figures that need ordering, like running balances.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	subledgerRepo portsrepo.SubledgerReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, subledgerRepo portsrepo.SubledgerReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		subledgerRepo: subledgerRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.AggregateTrialBalance(ctx, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period.
// Client-fund entries are excluded from every figure.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	revenue, err := s.reportingRepo.AggregateByTypeExcludingClientFunds(ctx, domain.Revenue, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve revenue data")
		return nil, fmt.Errorf("failed to retrieve revenue data: %w", err)
	}
	expenses, err := s.reportingRepo.AggregateByTypeExcludingClientFunds(ctx, domain.Expense, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve expense data")
		return nil, fmt.Errorf("failed to retrieve expense data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	report := &domain.PAndLReport{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetProfit:     totalRevenue.Sub(totalExpenses),
	}

	s.LogInfo(ctx, "Profit and loss report generated",
		slog.String("from", from.Format(time.RFC3339)),
		slog.String("to", to.Format(time.RFC3339)),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// MonthlyRevenueSeries generates month-bucketed revenue totals for a period.
func (s *reportingService) MonthlyRevenueSeries(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error) {
	points, err := s.reportingRepo.AggregateMonthlyRevenue(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly revenue data")
		return nil, fmt.Errorf("failed to retrieve monthly revenue data: %w", err)
	}
	return points, nil
}

// BalanceSheet generates a balance sheet as of a specific date. Client
// deposits are computed across all entries (trust money is owed regardless of
// fund tagging); equity is the balancing figure.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, err := s.reportingRepo.AggregateBalancesByPrefix(ctx, domain.PrefixAsset, asOf, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve asset balances")
		return nil, fmt.Errorf("failed to retrieve asset balances: %w", err)
	}
	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}

	// Liability balances are credit minus debit, the negation of the net the
	// repository returns.
	depositsNet, err := s.reportingRepo.SumNetByPrefix(ctx, domain.PrefixClientDeposits, asOf, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve client deposit balance")
		return nil, fmt.Errorf("failed to retrieve client deposit balance: %w", err)
	}
	clientDeposits := depositsNet.Neg()

	allLiabNet, err := s.reportingRepo.SumNetByPrefix(ctx, domain.PrefixLiability, asOf, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve liability balances")
		return nil, fmt.Errorf("failed to retrieve liability balances: %w", err)
	}
	depositLiabNet, err := s.reportingRepo.SumNetByPrefix(ctx, domain.PrefixClientDeposits, asOf, true)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve deposit liability balances: %w", err)
	}
	otherLiabilities := allLiabNet.Neg().Sub(depositLiabNet.Neg())

	totalLiabilities := clientDeposits.Add(otherLiabilities)

	report := &domain.BalanceSheetReport{
		Assets:           assets,
		TotalAssets:      totalAssets,
		ClientDeposits:   clientDeposits,
		OtherLiabilities: otherLiabilities,
		TotalLiabilities: totalLiabilities,
		Equity:           totalAssets.Sub(totalLiabilities),
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("asset_accounts", len(assets)))
	return report, nil
}

// ARAging generates the accounts receivable aging report as of a date.
func (s *reportingService) ARAging(ctx context.Context, asOf time.Time) ([]domain.ARAgingRow, error) {
	rows, err := s.reportingRepo.AggregateARAging(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve AR aging data")
		return nil, fmt.Errorf("failed to retrieve AR aging data: %w", err)
	}
	return rows, nil
}

// VehicleStatement generates a chronological statement of a vehicle's ledger
// activity with running balance and category subtotals.
func (s *reportingService) VehicleStatement(ctx context.Context, vehicleID int64, from, to *time.Time) (*domain.Statement, error) {
	categories := s.vehicleCategories(ctx, vehicleID)
	return s.statement(ctx, nil, &vehicleID, from, to, categories)
}

// ClientStatement generates a chronological statement of a customer's ledger
// activity with running balance and category subtotals.
func (s *reportingService) ClientStatement(ctx context.Context, customerID int64, from, to *time.Time) (*domain.Statement, error) {
	categories := s.clientCategories(ctx, customerID)
	return s.statement(ctx, &customerID, nil, from, to, categories)
}

// CashFlow generates month-bucketed net movement on the bank and cash
// accounts, excluding client-fund entries. Scoped to A100/A110 and their
// sub-accounts; other A1xx accounts (receivable, auction clearing) move
// without cash changing hands.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error) {
	points, err := s.reportingRepo.AggregateMonthlyNetByParentCodes(ctx, domain.BankCashCodes, from, to, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash flow data")
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}
	return points, nil
}

func (s *reportingService) statement(ctx context.Context, customerID, vehicleID *int64, from, to *time.Time, categories map[string]string) (*domain.Statement, error) {
	rangeFrom := time.Time{}
	if from != nil {
		rangeFrom = *from
	}
	rangeTo := time.Now().UTC()
	if to != nil {
		rangeTo = *to
	}

	rows, err := s.reportingRepo.FindStatementRows(ctx, customerID, vehicleID, rangeFrom, rangeTo)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve statement rows")
		return nil, fmt.Errorf("failed to retrieve statement rows: %w", err)
	}

	// Running balance accumulates debit minus credit in the repository's
	// chronological order; the final balance equals the sum over all rows.
	running := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	for i := range rows {
		net := rows[i].Debit.Sub(rows[i].Credit)
		running = running.Add(net)
		rows[i].RunningBalance = running

		category := categoryForCode(rows[i].AccountCode, categories)
		totals[category] = totals[category].Add(net)
	}

	return &domain.Statement{
		Rows:           rows,
		CategoryTotals: totals,
		FinalBalance:   running,
	}, nil
}

// vehicleCategories maps the vehicle's provisioned account codes to category
// labels. A missing structure degrades to prefix matching.
func (s *reportingService) vehicleCategories(ctx context.Context, vehicleID int64) map[string]string {
	structure, err := s.subledgerRepo.FindVehicleSubledger(ctx, vehicleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load vehicle subledger for statement", slog.Int64("vehicle_id", vehicleID))
		}
		return nil
	}
	return map[string]string{
		structure.DepositAccountCode:    "deposit",
		structure.AuctionAccountCode:    "auction",
		structure.FreightAccountCode:    "freight",
		structure.CustomsAccountCode:    "customs",
		structure.CommissionAccountCode: "commission",
		structure.StorageAccountCode:    "storage",
	}
}

// clientCategories maps the customer's provisioned account codes to category
// labels. A missing structure degrades to prefix matching.
func (s *reportingService) clientCategories(ctx context.Context, customerID int64) map[string]string {
	structure, err := s.subledgerRepo.FindClientSubledger(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load client subledger for statement", slog.Int64("customer_id", customerID))
		}
		return nil
	}
	return map[string]string{
		structure.DepositAccountCode:          "deposit",
		structure.AuctionAccountCode:          "auction",
		structure.ServiceRevenueAccountCode:   "service",
		structure.LogisticsExpenseAccountCode: "logistics",
		structure.ReceivableAccountCode:       "receivable",
	}
}

// prefixCategories maps canonical parent codes to category labels, used when
// an account code has no sub-ledger mapping.
var prefixCategories = map[string]string{
	domain.CodeClientDeposits:     "deposit",
	domain.CodeAuctionClearing:    "auction",
	domain.CodeVehicleInventory:   "auction",
	domain.CodeFreightExpense:     "freight",
	domain.CodeCustomsExpense:     "customs",
	domain.CodeStorageExpense:     "storage",
	domain.CodeCommissionRevenue:  "commission",
	domain.CodeServiceRevenue:     "service",
	domain.CodeReceivable:         "receivable",
	domain.CodeBank:               "cash",
	domain.CodeCash:               "cash",
	domain.CodeOperationalExpense: "expense",
}

func categoryForCode(code string, categories map[string]string) string {
	if category, ok := categories[code]; ok {
		return category
	}
	parent := accounting.ParentCode(code)
	if category, ok := prefixCategories[parent]; ok {
		return category
	}
	switch {
	case strings.HasPrefix(code, domain.PrefixRevenue):
		return "revenue"
	case strings.HasPrefix(code, domain.PrefixExpense):
		return "expense"
	default:
		return "other"
	}
}
