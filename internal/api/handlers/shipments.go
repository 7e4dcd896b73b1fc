package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/service"
)

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelShipmentRequest represents a cancel request
type CancelShipmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// HandleListShipments handles GET /v1/shipments
func HandleListShipments(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		var shipments []*domain.Shipment
		var err error
		if statusFilter := c.Query("status"); statusFilter != "" {
			shipments, err = repos.Shipment.ListByStatus(c.Request.Context(), domain.ShipmentStatus(statusFilter), limit, offset)
		} else {
			shipments, err = repos.Shipment.List(c.Request.Context(), limit, offset)
		}
		if err != nil {
			logger.Error("Failed to list shipments", zap.Error(err))
			writeDomainError(c, err)
			return
		}

		items := make([]gin.H, 0, len(shipments))
		for _, shipment := range shipments {
			items = append(items, shipmentResponse(shipment))
		}
		c.JSON(http.StatusOK, gin.H{"shipments": items, "limit": limit, "offset": offset})
	}
}

// HandleGetShipment handles GET /v1/shipments/:id
func HandleGetShipment(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipment, err := resolveShipmentByIDOrTracking(c.Request.Context(), repos, c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, shipmentResponse(shipment))
	}
}

// HandleGetShipmentEvents handles GET /v1/shipments/:id/events
func HandleGetShipmentEvents(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipment, err := resolveShipmentByIDOrTracking(c.Request.Context(), repos, c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}

		events, err := repos.ShipmentEvent.GetByShipmentID(c.Request.Context(), shipment.ID)
		if err != nil {
			logger.Error("Failed to list shipment events", zap.Error(err))
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"shipment_id": shipment.ID.String(), "events": events})
	}
}

// HandleGetNextStatuses handles GET /v1/shipments/:id/next-statuses
// Populates the "next status" selector on the dashboard.
func HandleGetNextStatuses(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipment, err := resolveShipmentByIDOrTracking(c.Request.Context(), repos, c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}

		next := shipment.Status.AllowedNextStatuses()
		options := make([]gin.H, 0, len(next))
		for _, status := range next {
			options = append(options, gin.H{"status": status, "badge": status.Badge()})
		}

		c.JSON(http.StatusOK, gin.H{
			"current":       shipment.Status,
			"current_badge": shipment.Status.Badge(),
			"next":          options,
		})
	}
}

// HandleUpdateShipmentStatus handles POST /v1/shipments/:id/status
func HandleUpdateShipmentStatus(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		shipment, err := resolveShipmentByIDOrTracking(c.Request.Context(), repos, c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}

		shipmentService := service.NewShipmentService(repos, notifier, logger)
		updated, err := shipmentService.TransitionStatus(c.Request.Context(), shipment.ID, domain.ShipmentStatus(req.Status))
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     updated.ID.String(),
			"status": updated.Status,
			"badge":  updated.Status.Badge(),
		})
	}
}

// HandleCancelShipment handles POST /v1/shipments/:id/cancel
func HandleCancelShipment(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CancelShipmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		shipment, err := resolveShipmentByIDOrTracking(c.Request.Context(), repos, c.Param("id"))
		if err != nil {
			writeDomainError(c, err)
			return
		}

		shipmentService := service.NewShipmentService(repos, notifier, logger)
		updated, err := shipmentService.CancelShipment(c.Request.Context(), shipment.ID, req.Reason)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     updated.ID.String(),
			"status": updated.Status,
		})
	}
}
