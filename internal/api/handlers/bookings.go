package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/middleware"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/service"
)

// HandleCreateBooking handles POST /v1/bookings
func HandleCreateBooking(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Idempotent replay: return the previously created shipment.
		if _, _, existingID, isExisting := middleware.GetIdempotencyInfo(c); isExisting {
			shipmentID, err := uuid.Parse(existingID)
			if err == nil {
				if shipment, err := repos.Shipment.GetByID(c.Request.Context(), shipmentID); err == nil {
					c.JSON(http.StatusOK, shipmentResponse(shipment))
					return
				}
			}
		}

		var req service.BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		shipmentService := service.NewShipmentService(repos, notifier, logger)
		shipment, err := shipmentService.CreateBooking(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to create booking", zap.Error(err))
			writeDomainError(c, err)
			return
		}

		// Store idempotency key for replay
		if key, requestHash, _, _ := middleware.GetIdempotencyInfo(c); key != "" {
			record := &domain.IdempotencyKey{
				Key:         key,
				ShipmentID:  shipment.ID,
				RequestHash: requestHash,
			}
			if err := repos.IdempotencyKey.Create(c.Request.Context(), record); err != nil {
				logger.Warn("Failed to store idempotency key", zap.Error(err))
			}
		}

		c.JSON(http.StatusCreated, shipmentResponse(shipment))
	}
}
