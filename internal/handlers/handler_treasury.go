package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/alwasl-auto/car_ledger_app/internal/middleware"
)

// treasuryHandler exposes the catalog of business transactions. Each route
// binds its request, runs one treasury operation and returns the journal
// entry it posted.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

// newTreasuryHandler creates a new treasuryHandler.
func newTreasuryHandler(ts portssvc.TreasurySvcFacade) *treasuryHandler {
	return &treasuryHandler{
		treasuryService: ts,
	}
}

// registerTreasuryRoutes registers one POST route per treasury operation.
func registerTreasuryRoutes(rg *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := newTreasuryHandler(treasuryService)

	treasury := rg.Group("/treasury")
	{
		treasury.POST("/deposits", h.receiveDeposit)
		treasury.POST("/deposits/refund", h.refundDeposit)
		treasury.POST("/deposits/pay-auction", h.payAuctionFromDeposit)
		treasury.POST("/commissions", h.recognizeCommission)
		treasury.POST("/vehicle-purchases", h.capitalizeVehiclePurchase)
		treasury.POST("/expenses", h.recordOperationalExpense)
		treasury.POST("/invoices/recognize-revenue", h.recognizeInvoiceRevenue)
		treasury.POST("/invoices/settle-payment", h.settleInvoicePayment)
	}
}

func (h *treasuryHandler) receiveDeposit(c *gin.Context) {
	runTreasuryOp(c, "ReceiveDeposit", h.treasuryService.ReceiveDeposit)
}

func (h *treasuryHandler) refundDeposit(c *gin.Context) {
	runTreasuryOp(c, "RefundDeposit", h.treasuryService.RefundDeposit)
}

func (h *treasuryHandler) payAuctionFromDeposit(c *gin.Context) {
	runTreasuryOp(c, "PayAuctionFromDeposit", h.treasuryService.PayAuctionFromDeposit)
}

func (h *treasuryHandler) recognizeCommission(c *gin.Context) {
	runTreasuryOp(c, "RecognizeCommission", h.treasuryService.RecognizeCommission)
}

func (h *treasuryHandler) capitalizeVehiclePurchase(c *gin.Context) {
	runTreasuryOp(c, "CapitalizeVehiclePurchase", h.treasuryService.CapitalizeVehiclePurchase)
}

func (h *treasuryHandler) recordOperationalExpense(c *gin.Context) {
	runTreasuryOp(c, "RecordOperationalExpense", h.treasuryService.RecordOperationalExpense)
}

func (h *treasuryHandler) recognizeInvoiceRevenue(c *gin.Context) {
	runTreasuryOp(c, "RecognizeInvoiceRevenue", h.treasuryService.RecognizeInvoiceRevenue)
}

func (h *treasuryHandler) settleInvoicePayment(c *gin.Context) {
	runTreasuryOp(c, "SettleInvoicePayment", h.treasuryService.SettleInvoicePayment)
}

// runTreasuryOp binds the request type R, invokes op and writes the shared
// response shape, mapping service errors onto HTTP statuses.
func runTreasuryOp[R any](c *gin.Context, name string, op func(ctx context.Context, req R, creatorUserID string) (*dto.TreasuryEntryResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for treasury operation",
			slog.String("operation", name),
			slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetActorIDFromContext(c)
	logger = logger.With(
		slog.String("operation", name),
		slog.String("creator_user_id", creatorUserID))

	resp, err := op(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error in treasury operation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Treasury operation target not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Treasury operation state conflict", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Treasury operation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
		}
		return
	}

	logger.Info("Treasury operation completed", slog.String("entry_id", resp.Entry.EntryID))
	c.JSON(http.StatusCreated, resp)
}
