package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type supportTicketRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSupportTicketRepository creates a new support ticket repository
func NewSupportTicketRepository(db *sql.DB, logger *zap.Logger) *supportTicketRepository {
	return &supportTicketRepository{db: db, logger: logger}
}

func (r *supportTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (shipment_id, subject, body, category, status, opened_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		ticket.ShipmentID, ticket.Subject, ticket.Body, ticket.Category, ticket.Status, ticket.OpenedBy,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create support ticket", zap.Error(err))
		return &errors.ErrPersistence{Op: "create support ticket", Err: err}
	}

	return nil
}

func (r *supportTicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	query := `
		SELECT id, shipment_id, subject, body, category, status, opened_by, created_at, updated_at
		FROM support_tickets
		WHERE id = $1
	`

	var ticket domain.SupportTicket
	var shipmentID uuid.NullUUID

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID, &shipmentID, &ticket.Subject, &ticket.Body, &ticket.Category,
		&ticket.Status, &ticket.OpenedBy, &ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "support ticket", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get support ticket", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "get support ticket", Err: err}
	}

	if shipmentID.Valid {
		ticket.ShipmentID = &shipmentID.UUID
	}

	return &ticket, nil
}

func (r *supportTicketRepository) List(ctx context.Context, limit, offset int) ([]*domain.SupportTicket, error) {
	query := `
		SELECT id, shipment_id, subject, body, category, status, opened_by, created_at, updated_at
		FROM support_tickets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryTickets(ctx, query, limit, offset)
}

func (r *supportTicketRepository) ListByStatus(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]*domain.SupportTicket, error) {
	query := `
		SELECT id, shipment_id, subject, body, category, status, opened_by, created_at, updated_at
		FROM support_tickets
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryTickets(ctx, query, status, limit, offset)
}

func (r *supportTicketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TicketStatus) error {
	query := `UPDATE support_tickets SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		r.logger.Error("Failed to update ticket status", zap.Error(err))
		return &errors.ErrPersistence{Op: "update ticket status", Err: err}
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "support ticket", ID: id.String()}
	}

	return nil
}

func (r *supportTicketRepository) queryTickets(ctx context.Context, query string, args ...interface{}) ([]*domain.SupportTicket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list support tickets", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "list support tickets", Err: err}
	}
	defer rows.Close()

	var tickets []*domain.SupportTicket
	for rows.Next() {
		var ticket domain.SupportTicket
		var shipmentID uuid.NullUUID
		if err := rows.Scan(
			&ticket.ID, &shipmentID, &ticket.Subject, &ticket.Body, &ticket.Category,
			&ticket.Status, &ticket.OpenedBy, &ticket.CreatedAt, &ticket.UpdatedAt,
		); err != nil {
			return nil, &errors.ErrPersistence{Op: "scan support ticket", Err: err}
		}
		if shipmentID.Valid {
			ticket.ShipmentID = &shipmentID.UUID
		}
		tickets = append(tickets, &ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrPersistence{Op: "list support tickets", Err: err}
	}

	return tickets, nil
}

type ticketReplyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTicketReplyRepository creates a new ticket reply repository
func NewTicketReplyRepository(db *sql.DB, logger *zap.Logger) *ticketReplyRepository {
	return &ticketReplyRepository{db: db, logger: logger}
}

func (r *ticketReplyRepository) Create(ctx context.Context, reply *domain.TicketReply) error {
	query := `
		INSERT INTO ticket_replies (ticket_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, reply.TicketID, reply.AuthorID, reply.Body).
		Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create ticket reply", zap.Error(err))
		return &errors.ErrPersistence{Op: "create ticket reply", Err: err}
	}

	return nil
}

func (r *ticketReplyRepository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]*domain.TicketReply, error) {
	query := `
		SELECT id, ticket_id, author_id, body, created_at
		FROM ticket_replies
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		r.logger.Error("Failed to list ticket replies", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "list ticket replies", Err: err}
	}
	defer rows.Close()

	var replies []*domain.TicketReply
	for rows.Next() {
		var reply domain.TicketReply
		var authorID uuid.NullUUID
		if err := rows.Scan(&reply.ID, &reply.TicketID, &authorID, &reply.Body, &reply.CreatedAt); err != nil {
			return nil, &errors.ErrPersistence{Op: "scan ticket reply", Err: err}
		}
		if authorID.Valid {
			reply.AuthorID = &authorID.UUID
		}
		replies = append(replies, &reply)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrPersistence{Op: "list ticket replies", Err: err}
	}

	return replies, nil
}
