package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Shipment:       NewShipmentRepository(db, logger),
		ShipmentEvent:  NewShipmentEventRepository(db, logger),
		Role:           NewRoleRepository(db, logger),
		User:           NewUserRepository(db, logger),
		SupportTicket:  NewSupportTicketRepository(db, logger),
		TicketReply:    NewTicketReplyRepository(db, logger),
		IdempotencyKey: NewIdempotencyKeyRepository(db, logger),
	}
}
