package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

// resolveShipmentByIDOrTracking looks a shipment up by UUID or by its
// tracking number (ZS-XXXXXXXX).
func resolveShipmentByIDOrTracking(ctx context.Context, repos *repository.Repositories, idParam string) (*domain.Shipment, error) {
	if id, err := uuid.Parse(idParam); err == nil {
		return repos.Shipment.GetByID(ctx, id)
	}
	return repos.Shipment.GetByTrackingNumber(ctx, idParam)
}

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// writeDomainError maps a typed error onto an HTTP response, distinguishing
// "not allowed by workflow" from "system error" so the UI can decide whether
// to offer a retry.
func writeDomainError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": e.Error(), "fields": e.Fields})
	case *errors.ErrInvalidStatusTransition:
		c.JSON(http.StatusBadRequest, gin.H{"error": e.Error(), "kind": "workflow"})
	case *errors.ErrProtectedRole:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error(), "kind": "protected_role"})
	case *errors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "kind": "system"})
	}
}

// shipmentResponse serializes a shipment with its badge metadata.
func shipmentResponse(shipment *domain.Shipment) gin.H {
	return gin.H{
		"id":              shipment.ID.String(),
		"tracking_number": shipment.TrackingNumber,
		"status":          shipment.Status,
		"badge":           shipment.Status.Badge(),
		"sender": gin.H{
			"name":  shipment.SenderName,
			"phone": shipment.SenderPhone,
		},
		"recipient": gin.H{
			"name":  shipment.RecipientName,
			"phone": shipment.RecipientPhone,
		},
		"origin_city":        shipment.OriginCity,
		"destination_city":   shipment.DestinationCity,
		"collection_address": shipment.CollectionAddress,
		"delivery_address":   shipment.DeliveryAddress,
		"metadata":           shipment.Metadata,
		"price_gbp":          shipment.PriceGBP,
		"cancel_reason":      shipment.CancelReason,
		"created_at":         shipment.CreatedAt,
		"updated_at":         shipment.UpdatedAt,
	}
}
