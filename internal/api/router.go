package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/handlers"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/middleware"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/config"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/notify"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, notifier notify.Notifier, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Zimbabwe Shipping Nexus API",
			"endpoints": []string{
				"GET /health",
				"POST /v1/auth/login",
				"POST /v1/bookings",
				"GET /v1/shipments",
				"POST /v1/shipments/:id/status",
				"GET /v1/roles",
				"POST /v1/tickets",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public routes: login, customer booking intake, customer tickets
		v1.POST("/auth/login", handlers.HandleLogin(cfg, repos, logger))

		bookingRoutes := v1.Group("")
		bookingRoutes.Use(middleware.IdempotencyMiddleware(repos, logger))
		{
			bookingRoutes.POST("/bookings", handlers.HandleCreateBooking(repos, notifier, logger))
		}
		v1.POST("/tickets", handlers.HandleOpenTicket(repos, notifier, logger))

		// Staff routes (require authentication + permission)
		staffRoutes := v1.Group("")
		staffRoutes.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret, repos, logger))
		{
			shipmentsRead := staffRoutes.Group("")
			shipmentsRead.Use(middleware.RequirePermission(repos, logger, domain.SectionShipments, domain.ActionRead))
			{
				shipmentsRead.GET("/shipments", handlers.HandleListShipments(repos, logger))
				shipmentsRead.GET("/shipments/:id", handlers.HandleGetShipment(repos, logger))
				shipmentsRead.GET("/shipments/:id/events", handlers.HandleGetShipmentEvents(repos, logger))
				shipmentsRead.GET("/shipments/:id/next-statuses", handlers.HandleGetNextStatuses(repos, logger))
			}

			shipmentsWrite := staffRoutes.Group("")
			shipmentsWrite.Use(middleware.RequirePermission(repos, logger, domain.SectionShipments, domain.ActionWrite))
			{
				shipmentsWrite.POST("/shipments/:id/status", handlers.HandleUpdateShipmentStatus(repos, notifier, logger))
				shipmentsWrite.POST("/shipments/:id/cancel", handlers.HandleCancelShipment(repos, notifier, logger))
			}

			// Role management is admin-only
			adminRoutes := staffRoutes.Group("")
			adminRoutes.Use(middleware.RequirePermission(repos, logger, domain.SectionAdmin, ""))
			{
				adminRoutes.GET("/roles", handlers.HandleListRoles(repos, logger))
				adminRoutes.GET("/roles/:id", handlers.HandleGetRole(repos, logger))
				adminRoutes.POST("/roles", handlers.HandleCreateRole(repos, logger))
				adminRoutes.PUT("/roles/:id", handlers.HandleUpdateRole(repos, logger))
				adminRoutes.DELETE("/roles/:id", handlers.HandleDeleteRole(repos, logger))
				adminRoutes.POST("/users/:id/role", handlers.HandleAssignRole(repos, logger))
			}

			supportRead := staffRoutes.Group("")
			supportRead.Use(middleware.RequirePermission(repos, logger, domain.SectionSupport, domain.ActionRead))
			{
				supportRead.GET("/tickets", handlers.HandleListTickets(repos, logger))
			}

			supportWrite := staffRoutes.Group("")
			supportWrite.Use(middleware.RequirePermission(repos, logger, domain.SectionSupport, domain.ActionWrite))
			{
				supportWrite.POST("/tickets/:id/replies", handlers.HandleAddReply(repos, notifier, logger))
				supportWrite.POST("/tickets/:id/status", handlers.HandleUpdateTicketStatus(repos, notifier, logger))
			}
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
