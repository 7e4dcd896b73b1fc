package domain

import "testing"

func TestEveryNonTerminalStatusHasNextStatuses(t *testing.T) {
	for _, status := range AllStatuses {
		next := status.AllowedNextStatuses()
		if status == StatusDelivered || status == StatusCancelled {
			if len(next) != 0 {
				t.Fatalf("terminal status %q should have no next statuses, got %v", status, next)
			}
			continue
		}
		if len(next) == 0 {
			t.Fatalf("non-terminal status %q should have next statuses", status)
		}
	}
}

func TestCanTransitionToMatchesAllowedNextStatuses(t *testing.T) {
	// Both functions must answer from the same table.
	for _, current := range AllStatuses {
		allowed := make(map[ShipmentStatus]bool)
		for _, next := range current.AllowedNextStatuses() {
			allowed[next] = true
		}
		for _, next := range AllStatuses {
			if got := current.CanTransitionTo(next); got != allowed[next] {
				t.Fatalf("CanTransitionTo(%q -> %q) = %v, diverges from AllowedNextStatuses", current, next, got)
			}
		}
	}
}

func TestNoSkippingAhead(t *testing.T) {
	if StatusProcessingWarehouseUK.CanTransitionTo(StatusDelivered) {
		t.Fatalf("must not jump from UK warehouse straight to Delivered")
	}
	if !StatusProcessingWarehouseUK.CanTransitionTo(StatusInTransit) {
		t.Fatalf("UK warehouse should transition to In Transit")
	}
}

func TestCancelledReachableFromEveryNonTerminalStatus(t *testing.T) {
	for _, status := range AllStatuses {
		if status.IsTerminal() {
			continue
		}
		if !status.CanTransitionTo(StatusCancelled) {
			t.Fatalf("status %q should be cancellable", status)
		}
	}
}

func TestUnmappedStatusFailsClosed(t *testing.T) {
	unknown := ShipmentStatus("Lost in Space")
	if next := unknown.AllowedNextStatuses(); len(next) != 0 {
		t.Fatalf("unmapped status should have no next statuses, got %v", next)
	}
	if unknown.CanTransitionTo(StatusDelivered) {
		t.Fatalf("unmapped status should not transition anywhere")
	}
}

func TestStatusMatchingIsCaseSensitive(t *testing.T) {
	if ShipmentStatus("in transit").IsValid() {
		t.Fatalf("status matching must be exact-string and case-sensitive")
	}
	if ShipmentStatus("delivered").CanTransitionTo(StatusCancelled) {
		t.Fatalf("lowercase status must not match")
	}
}

func TestLegacyPendingCollectionBehavesLikeBookingConfirmed(t *testing.T) {
	if !StatusPendingCollection.IsValid() {
		t.Fatalf("legacy Pending Collection should be accepted on read")
	}
	if !StatusPendingCollection.CanTransitionTo(StatusReadyForPickup) {
		t.Fatalf("legacy Pending Collection should transition like Booking Confirmed")
	}
	for _, status := range AllStatuses {
		if status.AllowedNextStatuses() == nil {
			continue
		}
		for _, next := range status.AllowedNextStatuses() {
			if next == StatusPendingCollection {
				t.Fatalf("legacy status must never be a transition target (from %q)", status)
			}
		}
	}
}

func TestBadgeCoversEveryCanonicalStatus(t *testing.T) {
	for _, status := range AllStatuses {
		badge := status.Badge()
		if badge.Label != string(status) {
			t.Fatalf("badge label for %q should equal the status, got %q", status, badge.Label)
		}
		if badge.ColorClass == "badge-gray" {
			t.Fatalf("canonical status %q must not fall back to the neutral badge", status)
		}
	}
}

func TestBadgeFallsBackToNeutralForUnknownStatus(t *testing.T) {
	badge := ShipmentStatus("Mystery").Badge()
	if badge.ColorClass != "badge-gray" {
		t.Fatalf("unknown status should get the neutral badge, got %q", badge.ColorClass)
	}
	if badge.Label != "Mystery" {
		t.Fatalf("unknown status badge should carry the raw value, got %q", badge.Label)
	}
}
