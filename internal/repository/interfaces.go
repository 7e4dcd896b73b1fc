package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
)

// ShipmentRepository defines shipment data access methods
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// UpdateStatus performs a conditional write: the row is updated only while
	// its status still equals expectedCurrent. Returns ErrNotFound if the id
	// does not exist and ErrConflict if the status moved under us.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ShipmentStatus, expectedCurrent domain.ShipmentStatus, cancelReason *string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Shipment, error)
	ListByStatus(ctx context.Context, status domain.ShipmentStatus, limit, offset int) ([]*domain.Shipment, error)
}

// ShipmentEventRepository defines shipment audit event data access methods
type ShipmentEventRepository interface {
	Create(ctx context.Context, event *domain.ShipmentEvent) error
	GetByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*domain.ShipmentEvent, error)
}

// RoleRepository defines role data access methods
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines staff user data access methods
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) error
}

// SupportTicketRepository defines support ticket data access methods
type SupportTicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error)
	List(ctx context.Context, limit, offset int) ([]*domain.SupportTicket, error)
	ListByStatus(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]*domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error
}

// TicketReplyRepository defines ticket reply data access methods
type TicketReplyRepository interface {
	Create(ctx context.Context, reply *domain.TicketReply) error
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketReply, error)
}

// IdempotencyKeyRepository defines idempotency key data access methods
type IdempotencyKeyRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Shipment       ShipmentRepository
	ShipmentEvent  ShipmentEventRepository
	Role           RoleRepository
	User           UserRepository
	SupportTicket  SupportTicketRepository
	TicketReply    TicketReplyRepository
	IdempotencyKey IdempotencyKeyRepository
}
