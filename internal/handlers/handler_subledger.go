package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alwasl-auto/car_ledger_app/internal/apperrors"
	portssvc "github.com/alwasl-auto/car_ledger_app/internal/core/ports/services"
	"github.com/alwasl-auto/car_ledger_app/internal/dto"
	"github.com/alwasl-auto/car_ledger_app/internal/middleware"
)

// subledgerHandler handles HTTP requests related to customer and vehicle
// sub-ledger structures.
type subledgerHandler struct {
	subledgerService portssvc.SubledgerSvcFacade
}

// newSubledgerHandler creates a new subledgerHandler.
func newSubledgerHandler(ss portssvc.SubledgerSvcFacade) *subledgerHandler {
	return &subledgerHandler{
		subledgerService: ss,
	}
}

// registerSubledgerRoutes registers routes related to sub-ledger structures.
func registerSubledgerRoutes(rg *gin.RouterGroup, subledgerService portssvc.SubledgerSvcFacade) {
	h := newSubledgerHandler(subledgerService)

	subledgers := rg.Group("/subledgers")
	{
		subledgers.POST("/clients", h.provisionClient)
		subledgers.GET("/clients/:id", h.getClient)
		subledgers.POST("/vehicles", h.provisionVehicle)
		subledgers.GET("/vehicles/:id", h.getVehicle)
	}
}

// provisionClient creates (or returns) a customer's sub-ledger accounts.
func (h *subledgerHandler) provisionClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProvisionClientSubledgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProvisionClientSubledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetActorIDFromContext(c)

	structure, err := h.subledgerService.EnsureClientSubledger(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to provision client sub-ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision client sub-ledger"})
		}
		return
	}

	logger.Info("Client sub-ledger ready", slog.Int64("customer_id", structure.CustomerID))
	c.JSON(http.StatusOK, dto.ToClientSubledgerResponse(structure))
}

// getClient retrieves an existing customer sub-ledger without provisioning.
func (h *subledgerHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	structure, err := h.subledgerService.GetClientSubledger(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client sub-ledger not found"})
		} else {
			logger.Error("Failed to get client sub-ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve client sub-ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClientSubledgerResponse(structure))
}

// provisionVehicle creates (or returns) a vehicle's sub-ledger accounts.
func (h *subledgerHandler) provisionVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProvisionVehicleSubledgerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProvisionVehicleSubledger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID := middleware.GetActorIDFromContext(c)

	structure, err := h.subledgerService.EnsureVehicleSubledger(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to provision vehicle sub-ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision vehicle sub-ledger"})
		}
		return
	}

	logger.Info("Vehicle sub-ledger ready", slog.Int64("vehicle_id", structure.VehicleID))
	c.JSON(http.StatusOK, dto.ToVehicleSubledgerResponse(structure))
}

// getVehicle retrieves an existing vehicle sub-ledger without provisioning.
func (h *subledgerHandler) getVehicle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	structure, err := h.subledgerService.GetVehicleSubledger(c.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle sub-ledger not found"})
		} else {
			logger.Error("Failed to get vehicle sub-ledger", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicle sub-ledger"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleSubledgerResponse(structure))
}
