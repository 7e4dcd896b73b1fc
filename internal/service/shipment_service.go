package service

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type shipmentService struct {
	repos    *repository.Repositories
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewShipmentService creates a new shipment service
func NewShipmentService(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) *shipmentService {
	return &shipmentService{
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateBooking creates a shipment from a booking form submission. The
// shipment starts at Booking Confirmed with a generated tracking number.
func (s *shipmentService) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Shipment, error) {
	shipment := &domain.Shipment{
		TrackingNumber:  GenerateTrackingNumber(),
		Status:          domain.StatusBookingConfirmed,
		SenderName:      strings.TrimSpace(req.Sender.Name),
		SenderPhone:     req.Sender.Phone,
		RecipientName:   strings.TrimSpace(req.Recipient.Name),
		RecipientPhone:  req.Recipient.Phone,
		OriginCity:      req.Collection.City,
		DestinationCity: req.Delivery.City,
		PriceGBP:        req.PriceGBP,
	}
	if email := strings.TrimSpace(req.Sender.Email); email != "" {
		shipment.SenderEmail = &email
	}

	shipment.CollectionAddress = map[string]interface{}{
		"street": req.Collection.Street,
		"city":   req.Collection.City,
	}
	if req.Collection.Postcode != "" {
		shipment.CollectionAddress["postcode"] = req.Collection.Postcode
	}
	shipment.DeliveryAddress = map[string]interface{}{
		"street": req.Delivery.Street,
		"city":   req.Delivery.City,
	}
	if req.Delivery.Suburb != "" {
		shipment.DeliveryAddress["suburb"] = req.Delivery.Suburb
	}
	shipment.Metadata = map[string]interface{}{
		"contents":       req.Contents,
		"weight_kg":      req.WeightKG,
		"declared_value": req.DeclaredValue,
	}

	s.logger.Info("Creating shipment booking", zap.String("tracking_number", shipment.TrackingNumber))
	if err := s.repos.Shipment.Create(ctx, shipment); err != nil {
		s.logger.Error("Failed to create shipment booking", zap.Error(err))
		return nil, err
	}

	event := &domain.ShipmentEvent{
		ShipmentID: shipment.ID,
		EventType:  "booking_created",
		EventData: map[string]interface{}{
			"tracking_number": shipment.TrackingNumber,
			"status":          shipment.Status,
		},
	}
	s.repos.ShipmentEvent.Create(ctx, event)

	s.publish(ctx, notify.Event{
		Type:      "shipment.booked",
		RelatedID: shipment.ID.String(),
		Payload: map[string]interface{}{
			"tracking_number": shipment.TrackingNumber,
			"status":          string(shipment.Status),
		},
	})

	return shipment, nil
}

// AllowedNextStatuses returns the statuses reachable from the shipment's
// current persisted status
func (s *shipmentService) AllowedNextStatuses(ctx context.Context, shipmentID uuid.UUID) ([]domain.ShipmentStatus, error) {
	shipment, err := s.repos.Shipment.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return shipment.Status.AllowedNextStatuses(), nil
}

// TransitionStatus moves a shipment to next if the workflow allows it from the
// current persisted status. The write is conditional on the status we read, so
// a concurrent transition surfaces as a conflict instead of a lost update.
// Notification dispatch is best-effort and never rolls back the transition.
func (s *shipmentService) TransitionStatus(ctx context.Context, shipmentID uuid.UUID, next domain.ShipmentStatus) (*domain.Shipment, error) {
	if !next.IsValid() || next == domain.StatusPendingCollection {
		return nil, &errors.ErrValidation{
			Message: "unknown status " + string(next),
			Fields:  map[string]string{"status": "must be a canonical shipment status"},
		}
	}

	shipment, err := s.repos.Shipment.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if !shipment.Status.CanTransitionTo(next) {
		return nil, &errors.ErrInvalidStatusTransition{From: shipment.Status, To: next}
	}

	if err := s.repos.Shipment.UpdateStatus(ctx, shipmentID, next, shipment.Status, nil); err != nil {
		return nil, err
	}

	event := &domain.ShipmentEvent{
		ShipmentID: shipmentID,
		EventType:  "status_change",
		EventData: map[string]interface{}{
			"from": shipment.Status,
			"to":   next,
		},
	}
	s.repos.ShipmentEvent.Create(ctx, event)

	s.publish(ctx, notify.Event{
		Type:      "shipment.status." + string(next),
		RelatedID: shipmentID.String(),
		Payload: map[string]interface{}{
			"tracking_number": shipment.TrackingNumber,
			"from":            string(shipment.Status),
			"to":              string(next),
		},
	})

	shipment.Status = next
	return shipment, nil
}

// CancelShipment cancels a shipment with a reason. Terminal shipments cannot
// be cancelled.
func (s *shipmentService) CancelShipment(ctx context.Context, shipmentID uuid.UUID, reason string) (*domain.Shipment, error) {
	shipment, err := s.repos.Shipment.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	// Already cancelled - idempotent success
	if shipment.Status == domain.StatusCancelled {
		return shipment, nil
	}

	if !shipment.Status.CanTransitionTo(domain.StatusCancelled) {
		return nil, &errors.ErrInvalidStatusTransition{From: shipment.Status, To: domain.StatusCancelled}
	}

	if err := s.repos.Shipment.UpdateStatus(ctx, shipmentID, domain.StatusCancelled, shipment.Status, &reason); err != nil {
		return nil, err
	}

	event := &domain.ShipmentEvent{
		ShipmentID: shipmentID,
		EventType:  "status_change",
		EventData: map[string]interface{}{
			"from":   shipment.Status,
			"to":     domain.StatusCancelled,
			"reason": reason,
		},
	}
	s.repos.ShipmentEvent.Create(ctx, event)

	s.publish(ctx, notify.Event{
		Type:      "shipment.cancelled",
		RelatedID: shipmentID.String(),
		Payload: map[string]interface{}{
			"tracking_number": shipment.TrackingNumber,
			"reason":          reason,
		},
	})

	shipment.Status = domain.StatusCancelled
	shipment.CancelReason = &reason
	return shipment, nil
}

// publish sends a notification and swallows failures: notification delivery
// must never affect the outcome of the primary operation.
func (s *shipmentService) publish(ctx context.Context, event notify.Event) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to publish notification",
			zap.String("event_type", event.Type),
			zap.String("related_id", event.RelatedID),
			zap.Error(err),
		)
	}
}

// GenerateTrackingNumber produces a human-facing tracking number in the
// ZS-XXXXXXXX format (8 uppercase hex characters).
func GenerateTrackingNumber() string {
	id := uuid.New()
	return "ZS-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}
