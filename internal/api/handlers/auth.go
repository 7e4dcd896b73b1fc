package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/api/middleware"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/config"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
)

// LoginRequest represents a staff login request
type LoginRequest struct {
	Email  string `json:"email" binding:"required"`
	APIKey string `json:"api_key" binding:"required"`
}

// HandleLogin handles POST /v1/auth/login
func HandleLogin(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		user, err := repos.User.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			// Same response for unknown user and bad key.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if !user.IsActive || !middleware.VerifyAPIKey(req.APIKey, user.APIKeyHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := middleware.GenerateToken(cfg.Auth.JWTSecret, user)
		if err != nil {
			logger.Error("Failed to generate token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":        user.ID.String(),
				"email":     user.Email,
				"full_name": user.FullName,
				"role_id":   user.RoleID,
			},
		})
	}
}
