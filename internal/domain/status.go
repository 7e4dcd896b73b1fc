package domain

// ShipmentStatus represents the lifecycle stage of a shipment. The string
// value is both the storage value and the display label.
type ShipmentStatus string

const (
	StatusBookingConfirmed      ShipmentStatus = "Booking Confirmed"
	StatusReadyForPickup        ShipmentStatus = "Ready for Pickup"
	StatusProcessingWarehouseUK ShipmentStatus = "Processing in Warehouse (UK)"
	StatusInTransit             ShipmentStatus = "In Transit"
	StatusCustomsClearance      ShipmentStatus = "Customs Clearance"
	StatusProcessingWarehouseZW ShipmentStatus = "Processing in Warehouse (ZW)"
	StatusOutForDelivery        ShipmentStatus = "Out for Delivery"
	StatusDelivered             ShipmentStatus = "Delivered"
	StatusCancelled             ShipmentStatus = "Cancelled"

	// Legacy value written by an old guest-booking flow (accepted from the DB,
	// never written by this codebase)
	StatusPendingCollection ShipmentStatus = "Pending Collection"
)

// AllStatuses lists the canonical statuses in happy-path order, Cancelled last.
var AllStatuses = []ShipmentStatus{
	StatusBookingConfirmed,
	StatusReadyForPickup,
	StatusProcessingWarehouseUK,
	StatusInTransit,
	StatusCustomsClearance,
	StatusProcessingWarehouseZW,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// statusTransitions is the fixed transition table. Delivered is the unique
// happy-path sink; Cancelled is reachable from every non-terminal status.
// Loaded once, never mutated at runtime, safe to share across requests.
var statusTransitions = map[ShipmentStatus][]ShipmentStatus{
	StatusBookingConfirmed:      {StatusReadyForPickup, StatusCancelled},
	StatusReadyForPickup:        {StatusProcessingWarehouseUK, StatusCancelled},
	StatusProcessingWarehouseUK: {StatusInTransit, StatusCancelled},
	StatusInTransit:             {StatusCustomsClearance, StatusCancelled},
	StatusCustomsClearance:      {StatusProcessingWarehouseZW, StatusCancelled},
	StatusProcessingWarehouseZW: {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery:        {StatusDelivered, StatusCancelled},
	StatusDelivered:             {},
	StatusCancelled:             {},
}

// IsValid checks if the shipment status is a recognized value
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case StatusBookingConfirmed,
		StatusReadyForPickup,
		StatusProcessingWarehouseUK,
		StatusInTransit,
		StatusCustomsClearance,
		StatusProcessingWarehouseZW,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
		// Legacy (accepted from DB until migrated)
		StatusPendingCollection:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no forward transition exists from s.
func (s ShipmentStatus) IsTerminal() bool {
	return s.normalize() == StatusDelivered || s.normalize() == StatusCancelled
}

// AllowedNextStatuses returns the statuses immediately reachable from s.
// Terminal and unmapped statuses return an empty set (fails closed).
func (s ShipmentStatus) AllowedNextStatuses() []ShipmentStatus {
	next, ok := statusTransitions[s.normalize()]
	if !ok {
		return nil
	}
	out := make([]ShipmentStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo checks if a status transition is valid. Matching is exact
// and case-sensitive; callers must supply canonical strings.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	for _, allowed := range statusTransitions[s.normalize()] {
		if allowed == next {
			return true
		}
	}
	return false
}

// normalize maps legacy statuses onto the canonical set for transition logic
func (s ShipmentStatus) normalize() ShipmentStatus {
	if s == StatusPendingCollection {
		return StatusBookingConfirmed
	}
	return s
}

// StatusBadge carries display metadata for a status.
type StatusBadge struct {
	Label      string `json:"label"`
	ColorClass string `json:"color_class"`
	Icon       string `json:"icon"`
}

var statusBadges = map[ShipmentStatus]StatusBadge{
	StatusBookingConfirmed:      {Label: string(StatusBookingConfirmed), ColorClass: "badge-blue", Icon: "clipboard-check"},
	StatusReadyForPickup:        {Label: string(StatusReadyForPickup), ColorClass: "badge-indigo", Icon: "package"},
	StatusProcessingWarehouseUK: {Label: string(StatusProcessingWarehouseUK), ColorClass: "badge-amber", Icon: "warehouse"},
	StatusInTransit:             {Label: string(StatusInTransit), ColorClass: "badge-sky", Icon: "ship"},
	StatusCustomsClearance:      {Label: string(StatusCustomsClearance), ColorClass: "badge-orange", Icon: "shield-check"},
	StatusProcessingWarehouseZW: {Label: string(StatusProcessingWarehouseZW), ColorClass: "badge-amber", Icon: "warehouse"},
	StatusOutForDelivery:        {Label: string(StatusOutForDelivery), ColorClass: "badge-violet", Icon: "truck"},
	StatusDelivered:             {Label: string(StatusDelivered), ColorClass: "badge-green", Icon: "check-circle"},
	StatusCancelled:             {Label: string(StatusCancelled), ColorClass: "badge-red", Icon: "x-circle"},
}

// Badge returns display metadata for s. Unrecognized statuses get a neutral
// gray badge labeled with the raw value rather than being mislabeled.
func (s ShipmentStatus) Badge() StatusBadge {
	if badge, ok := statusBadges[s]; ok {
		return badge
	}
	return StatusBadge{Label: string(s), ColorClass: "badge-gray", Icon: "help-circle"}
}
