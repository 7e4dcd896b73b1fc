package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/middleware"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/service"
)

// ReplyRequest represents a ticket reply request
type ReplyRequest struct {
	Body string `json:"body" binding:"required"`
}

// TicketStatusRequest represents a ticket status change request
type TicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleOpenTicket handles POST /v1/tickets
func HandleOpenTicket(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.TicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ticketService := service.NewTicketService(repos, notifier, logger)
		ticket, err := ticketService.OpenTicket(c.Request.Context(), req)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      ticket.ID.String(),
			"subject": ticket.Subject,
			"status":  ticket.Status,
		})
	}
}

// HandleListTickets handles GET /v1/tickets
func HandleListTickets(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parsePagination(c)

		var tickets []*domain.SupportTicket
		var err error
		if statusFilter := c.Query("status"); statusFilter != "" {
			tickets, err = repos.SupportTicket.ListByStatus(c.Request.Context(), domain.TicketStatus(statusFilter), limit, offset)
		} else {
			tickets, err = repos.SupportTicket.List(c.Request.Context(), limit, offset)
		}
		if err != nil {
			logger.Error("Failed to list tickets", zap.Error(err))
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tickets": tickets, "limit": limit, "offset": offset})
	}
}

// HandleAddReply handles POST /v1/tickets/:id/replies
func HandleAddReply(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
			return
		}

		var req ReplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		// Staff replies carry the authenticated user as author.
		var authorID *uuid.UUID
		if user, ok := middleware.GetUserFromContext(c); ok {
			authorID = &user.ID
		}

		ticketService := service.NewTicketService(repos, notifier, logger)
		reply, err := ticketService.AddReply(c.Request.Context(), ticketID, authorID, req.Body)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":        reply.ID.String(),
			"ticket_id": reply.TicketID.String(),
		})
	}
}

// HandleUpdateTicketStatus handles POST /v1/tickets/:id/status
func HandleUpdateTicketStatus(repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
			return
		}

		var req TicketStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		ticketService := service.NewTicketService(repos, notifier, logger)
		if err := ticketService.UpdateStatus(c.Request.Context(), ticketID, domain.TicketStatus(req.Status)); err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     ticketID.String(),
			"status": req.Status,
		})
	}
}
