package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	"github.com/alwasl-auto/car_ledger_app/internal/core/domain"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/alwasl-auto/car_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers one GET route per report.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/monthly-revenue", h.monthlyRevenue)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/ar-aging", h.arAging)
		reports.GET("/vehicles/:id/statement", h.vehicleStatement)
		reports.GET("/clients/:id/statement", h.clientStatement)
		reports.GET("/cash-flow", h.cashFlow)
	}
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.TrialBalance(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to generate trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate trial balance"})
		return
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	c.JSON(http.StatusOK, dto.TrialBalanceResponse{
		AsOf:        params.AsOf,
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	})
}

func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to generate profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate profit and loss"})
		return
	}

	c.JSON(http.StatusOK, dto.PAndLResponse{From: params.From, To: params.To, Report: *report})
}

func (h *reportingHandler) monthlyRevenue(c *gin.Context) {
	h.monthlySeries(c, h.reportingService.MonthlyRevenueSeries, "monthly revenue")
}

func (h *reportingHandler) cashFlow(c *gin.Context) {
	h.monthlySeries(c, h.reportingService.CashFlow, "cash flow")
}

func (h *reportingHandler) monthlySeries(c *gin.Context, generate func(ctx context.Context, from, to time.Time) ([]domain.MonthlyPoint, error), name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	points, err := generate(c.Request.Context(), params.From, params.To)
	if err != nil {
		logger.Error("Failed to generate "+name+" series", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + name + " series"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlySeriesResponse{From: params.From, To: params.To, Points: points})
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to generate balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceSheetResponse{AsOf: params.AsOf, Report: *report})
}

func (h *reportingHandler) arAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.ARAging(c.Request.Context(), params.AsOf)
	if err != nil {
		logger.Error("Failed to generate AR aging", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate AR aging"})
		return
	}

	c.JSON(http.StatusOK, dto.ARAgingResponse{AsOf: params.AsOf, Rows: rows})
}

func (h *reportingHandler) vehicleStatement(c *gin.Context) {
	h.statement(c, h.reportingService.VehicleStatement, "vehicle")
}

func (h *reportingHandler) clientStatement(c *gin.Context) {
	h.statement(c, h.reportingService.ClientStatement, "client")
}

func (h *reportingHandler) statement(c *gin.Context, generate func(ctx context.Context, ownerID int64, from, to *time.Time) (*domain.Statement, error), name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " ID"})
		return
	}

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := generate(c.Request.Context(), ownerID, params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": name + " sub-ledger not found"})
			return
		}
		logger.Error("Failed to generate "+name+" statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + name + " statement"})
		return
	}

	c.JSON(http.StatusOK, dto.StatementResponse{Statement: *statement})
}
