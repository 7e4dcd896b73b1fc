package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type ticketService struct {
	repos    *repository.Repositories
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewTicketService creates a new support ticket service
func NewTicketService(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) *ticketService {
	return &ticketService{
		repos:    repos,
		notifier: notifier,
		logger:   logger,
	}
}

// OpenTicket opens a support ticket, optionally linked to a shipment.
func (s *ticketService) OpenTicket(ctx context.Context, req TicketRequest) (*domain.SupportTicket, error) {
	ticket := &domain.SupportTicket{
		Subject:  req.Subject,
		Body:     req.Body,
		Category: req.Category,
		Status:   domain.TicketStatusOpen,
		OpenedBy: req.OpenedBy,
	}
	if ticket.Category == "" {
		ticket.Category = "General"
	}

	if req.ShipmentID != "" {
		shipmentID, err := uuid.Parse(req.ShipmentID)
		if err != nil {
			return nil, &errors.ErrValidation{
				Message: "invalid shipment id",
				Fields:  map[string]string{"shipment_id": "must be a UUID"},
			}
		}
		// Linked shipment must exist.
		if _, err := s.repos.Shipment.GetByID(ctx, shipmentID); err != nil {
			return nil, err
		}
		ticket.ShipmentID = &shipmentID
	}

	if err := s.repos.SupportTicket.Create(ctx, ticket); err != nil {
		s.logger.Error("Failed to open support ticket", zap.Error(err))
		return nil, err
	}

	if err := s.notifier.Notify(ctx, notify.Event{
		Type:      "ticket.opened",
		RelatedID: ticket.ID.String(),
		Payload: map[string]interface{}{
			"subject":  ticket.Subject,
			"category": ticket.Category,
		},
	}); err != nil {
		s.logger.Warn("Failed to publish ticket notification", zap.Error(err))
	}

	return ticket, nil
}

// AddReply appends a reply to a ticket. Staff replies move open tickets to
// replied; a customer reply on a resolved ticket reopens it.
func (s *ticketService) AddReply(ctx context.Context, ticketID uuid.UUID, authorID *uuid.UUID, body string) (*domain.TicketReply, error) {
	if body == "" {
		return nil, &errors.ErrValidation{
			Message: "reply body is required",
			Fields:  map[string]string{"body": "required"},
		}
	}

	ticket, err := s.repos.SupportTicket.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, &errors.ErrConflict{Message: "ticket is closed"}
	}

	reply := &domain.TicketReply{
		TicketID: ticketID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.repos.TicketReply.Create(ctx, reply); err != nil {
		s.logger.Error("Failed to create ticket reply", zap.Error(err))
		return nil, err
	}

	var nextStatus domain.TicketStatus
	switch {
	case authorID != nil && ticket.Status == domain.TicketStatusOpen:
		nextStatus = domain.TicketStatusReplied
	case authorID == nil && ticket.Status == domain.TicketStatusResolved:
		nextStatus = domain.TicketStatusOpen
	}
	if nextStatus != "" {
		if err := s.repos.SupportTicket.UpdateStatus(ctx, ticketID, nextStatus); err != nil {
			return nil, err
		}
	}

	return reply, nil
}

// UpdateStatus sets a ticket's lifecycle status
func (s *ticketService) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status domain.TicketStatus) error {
	switch status {
	case domain.TicketStatusOpen, domain.TicketStatusReplied, domain.TicketStatusResolved, domain.TicketStatusClosed:
	default:
		return &errors.ErrValidation{
			Message: "unknown ticket status " + string(status),
			Fields:  map[string]string{"status": "must be open, replied, resolved or closed"},
		}
	}

	if _, err := s.repos.SupportTicket.GetByID(ctx, ticketID); err != nil {
		return err
	}

	return s.repos.SupportTicket.UpdateStatus(ctx, ticketID, status)
}
