package service

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

func testBookingRequest() BookingRequest {
	var req BookingRequest
	req.Sender.Name = "Tariro Moyo"
	req.Sender.Phone = "+447700900123"
	req.Sender.Email = "tariro@example.com"
	req.Recipient.Name = "Blessing Moyo"
	req.Recipient.Phone = "+263771234567"
	req.Collection.Street = "12 Acacia Road"
	req.Collection.City = "Luton"
	req.Collection.Postcode = "LU1 1AA"
	req.Delivery.Street = "48 Samora Machel Ave"
	req.Delivery.Suburb = "Avondale"
	req.Delivery.City = "Harare"
	req.Contents = "Clothing and groceries"
	req.WeightKG = 18.5
	req.PriceGBP = 55
	return req
}

func seedShipment(t *testing.T, shipments *fakeShipmentRepo, status domain.ShipmentStatus) *domain.Shipment {
	t.Helper()
	shipment := &domain.Shipment{
		TrackingNumber: GenerateTrackingNumber(),
		Status:         status,
		SenderName:     "Tariro Moyo",
		RecipientName:  "Blessing Moyo",
	}
	if err := shipments.Create(context.Background(), shipment); err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
	return shipment
}

func TestCreateBookingStartsAtBookingConfirmed(t *testing.T) {
	repos, shipments, events, _ := newFakeRepos()
	notifier := &fakeNotifier{}
	svc := NewShipmentService(repos, notifier, zap.NewNop())

	shipment, err := svc.CreateBooking(context.Background(), testBookingRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if shipment.Status != domain.StatusBookingConfirmed {
		t.Fatalf("new booking should start at %q, got %q", domain.StatusBookingConfirmed, shipment.Status)
	}
	if _, ok := shipments.shipments[shipment.ID]; !ok {
		t.Fatalf("booking was not persisted")
	}
	if len(events.events) != 1 || events.events[0].EventType != "booking_created" {
		t.Fatalf("expected a single booking_created event, got %+v", events.events)
	}
	if len(notifier.events) != 1 || notifier.events[0].Type != "shipment.booked" {
		t.Fatalf("expected a shipment.booked notification, got %+v", notifier.events)
	}
}

func TestGenerateTrackingNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ZS-[0-9A-F]{8}$`)
	for i := 0; i < 50; i++ {
		tn := GenerateTrackingNumber()
		if !pattern.MatchString(tn) {
			t.Fatalf("tracking number %q does not match ZS-XXXXXXXX", tn)
		}
	}
}

func TestTransitionStatusFollowsWorkflow(t *testing.T) {
	repos, shipments, events, _ := newFakeRepos()
	notifier := &fakeNotifier{}
	svc := NewShipmentService(repos, notifier, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusProcessingWarehouseUK)

	updated, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusInTransit)
	if err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}
	if updated.Status != domain.StatusInTransit {
		t.Fatalf("returned shipment should carry the new status, got %q", updated.Status)
	}
	if shipments.shipments[shipment.ID].Status != domain.StatusInTransit {
		t.Fatalf("persisted status should be %q, got %q", domain.StatusInTransit, shipments.shipments[shipment.ID].Status)
	}
	if len(events.events) != 1 || events.events[0].EventType != "status_change" {
		t.Fatalf("expected a status_change event, got %+v", events.events)
	}
	if len(notifier.events) != 1 || notifier.events[0].Type != "shipment.status.In Transit" {
		t.Fatalf("expected a status notification, got %+v", notifier.events)
	}
}

func TestTransitionStatusRejectsSkippingAhead(t *testing.T) {
	repos, shipments, events, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusProcessingWarehouseUK)

	_, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusDelivered)
	if err == nil {
		t.Fatalf("UK warehouse straight to Delivered should be rejected")
	}
	var transitionErr *errors.ErrInvalidStatusTransition
	if !stderrors.As(err, &transitionErr) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %T: %v", err, err)
	}
	if shipments.shipments[shipment.ID].Status != domain.StatusProcessingWarehouseUK {
		t.Fatalf("rejected transition must not change persisted status")
	}
	if len(events.events) != 0 {
		t.Fatalf("rejected transition must not write events")
	}
}

func TestTransitionStatusRejectsUnknownAndLegacyTargets(t *testing.T) {
	repos, shipments, _, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusBookingConfirmed)

	for _, target := range []domain.ShipmentStatus{"Lost", "in transit", domain.StatusPendingCollection} {
		_, err := svc.TransitionStatus(context.Background(), shipment.ID, target)
		if err == nil {
			t.Fatalf("target %q should be rejected as input", target)
		}
		if _, ok := err.(*errors.ErrValidation); !ok {
			t.Fatalf("target %q should be a validation error, got %T", target, err)
		}
	}
}

func TestTransitionStatusRetryAfterSuccessFails(t *testing.T) {
	repos, shipments, _, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusInTransit)

	if _, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusCustomsClearance); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	// The shipment already sits at Customs Clearance, so a blind client retry
	// is a no-op transition and must be rejected.
	_, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusCustomsClearance)
	if err == nil {
		t.Fatalf("retry of a completed transition should fail")
	}
	var transitionErr *errors.ErrInvalidStatusTransition
	if !stderrors.As(err, &transitionErr) {
		t.Fatalf("expected ErrInvalidStatusTransition on retry, got %T: %v", err, err)
	}
}

func TestTransitionStatusDetectsConcurrentUpdate(t *testing.T) {
	repos, shipments, events, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusBookingConfirmed)

	// Another actor moves the shipment between our read and our write.
	shipments.interfere = func() {
		shipments.shipments[shipment.ID].Status = domain.StatusCancelled
	}

	_, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusReadyForPickup)
	if err == nil {
		t.Fatalf("stale write should be rejected")
	}
	if _, ok := err.(*errors.ErrConflict); !ok {
		t.Fatalf("expected ErrConflict, got %T: %v", err, err)
	}
	if shipments.shipments[shipment.ID].Status != domain.StatusCancelled {
		t.Fatalf("losing writer must not clobber the concurrent update")
	}
	if len(events.events) != 0 {
		t.Fatalf("losing writer must not record events")
	}
}

func TestTransitionStatusSurvivesNotifierFailure(t *testing.T) {
	repos, shipments, _, _ := newFakeRepos()
	notifier := &fakeNotifier{err: stderrors.New("broker unreachable")}
	svc := NewShipmentService(repos, notifier, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusOutForDelivery)

	updated, err := svc.TransitionStatus(context.Background(), shipment.ID, domain.StatusDelivered)
	if err != nil {
		t.Fatalf("notifier failure must not fail the transition: %v", err)
	}
	if updated.Status != domain.StatusDelivered {
		t.Fatalf("transition should have completed, got %q", updated.Status)
	}
}

func TestCancelShipmentIsIdempotent(t *testing.T) {
	repos, shipments, events, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusInTransit)

	first, err := svc.CancelShipment(context.Background(), shipment.ID, "customer request")
	if err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if first.Status != domain.StatusCancelled {
		t.Fatalf("shipment should be cancelled, got %q", first.Status)
	}
	if first.CancelReason == nil || *first.CancelReason != "customer request" {
		t.Fatalf("cancel reason not recorded")
	}

	second, err := svc.CancelShipment(context.Background(), shipment.ID, "customer request")
	if err != nil {
		t.Fatalf("repeated cancel should succeed: %v", err)
	}
	if second.Status != domain.StatusCancelled {
		t.Fatalf("repeated cancel should report cancelled")
	}
	if len(events.events) != 1 {
		t.Fatalf("repeated cancel must not record another event, got %d", len(events.events))
	}
}

func TestCancelDeliveredShipmentFails(t *testing.T) {
	repos, shipments, _, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusDelivered)

	_, err := svc.CancelShipment(context.Background(), shipment.ID, "too late")
	if err == nil {
		t.Fatalf("delivered shipment must not be cancellable")
	}
	var transitionErr *errors.ErrInvalidStatusTransition
	if !stderrors.As(err, &transitionErr) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %T: %v", err, err)
	}
}

func TestAllowedNextStatusesReadsPersistedStatus(t *testing.T) {
	repos, shipments, _, _ := newFakeRepos()
	svc := NewShipmentService(repos, &fakeNotifier{}, zap.NewNop())

	shipment := seedShipment(t, shipments, domain.StatusCustomsClearance)

	next, err := svc.AllowedNextStatuses(context.Background(), shipment.ID)
	if err != nil {
		t.Fatalf("AllowedNextStatuses: %v", err)
	}
	want := map[domain.ShipmentStatus]bool{
		domain.StatusProcessingWarehouseZW: true,
		domain.StatusCancelled:             true,
	}
	if len(next) != len(want) {
		t.Fatalf("unexpected next statuses %v", next)
	}
	for _, status := range next {
		if !want[status] {
			t.Fatalf("unexpected next status %q", status)
		}
	}

	if _, err := svc.AllowedNextStatuses(context.Background(), uuid.New()); err == nil {
		t.Fatalf("unknown shipment should be a not found error")
	}
}
