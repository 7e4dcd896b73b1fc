package domain

import (
	"time"

	"github.com/google/uuid"
)

// Shipment represents a parcel booking tracked from collection in the UK
// through delivery in Zimbabwe
type Shipment struct {
	ID                uuid.UUID
	TrackingNumber    string // human-facing, e.g. ZS-9F0A31C4
	Status            ShipmentStatus
	SenderName        string
	SenderPhone       string
	SenderEmail       *string
	RecipientName     string
	RecipientPhone    string
	OriginCity        string
	DestinationCity   string
	CollectionAddress map[string]interface{} // JSONB: street, city, postcode
	DeliveryAddress   map[string]interface{} // JSONB: street, suburb, city
	Metadata          map[string]interface{} // JSONB: parcel contents, weight, declared value
	PriceGBP          float64
	CancelReason      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ShipmentEvent represents an audit event for a shipment
type ShipmentEvent struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	EventType  string
	EventData  map[string]interface{} // JSONB
	CreatedAt  time.Time
}

// Role is a named bundle of permissions assignable to users. Protected roles
// carry the flag in the row; deletion is vetoed on the flag or the name so a
// rename cannot silently drop protection.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	Permissions Permissions
	Protected   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User represents a staff member of the portal
type User struct {
	ID         uuid.UUID
	Email      string
	FullName   string
	APIKeyHash string
	RoleID     *uuid.UUID
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TicketStatus is the support ticket lifecycle stage.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusReplied  TicketStatus = "replied"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

// SupportTicket represents a customer support request
type SupportTicket struct {
	ID         uuid.UUID
	ShipmentID *uuid.UUID
	Subject    string
	Body       string
	Category   string
	Status     TicketStatus
	OpenedBy   string // customer email or user id
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TicketReply represents one message on a support ticket
type TicketReply struct {
	ID        uuid.UUID
	TicketID  uuid.UUID
	AuthorID  *uuid.UUID // nil for customer replies
	Body      string
	CreatedAt time.Time
}

// IdempotencyKey stores idempotency information for booking submissions
type IdempotencyKey struct {
	Key         string
	ShipmentID  uuid.UUID
	RequestHash string
	CreatedAt   time.Time
}
