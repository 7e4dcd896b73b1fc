package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/service"
)

// RoleRequest represents a role create/update request
type RoleRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Permissions domain.Permissions `json:"permissions"`
}

// AssignRoleRequest represents a user role assignment request
type AssignRoleRequest struct {
	RoleID string `json:"role_id" binding:"required"`
}

func roleResponse(role *domain.Role) gin.H {
	return gin.H{
		"id":          role.ID.String(),
		"name":        role.Name,
		"description": role.Description,
		"permissions": role.Permissions,
		"protected":   role.Protected,
		"created_at":  role.CreatedAt,
		"updated_at":  role.UpdatedAt,
	}
}

// HandleListRoles handles GET /v1/roles
func HandleListRoles(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, err := repos.Role.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list roles", zap.Error(err))
			writeDomainError(c, err)
			return
		}

		items := make([]gin.H, 0, len(roles))
		for _, role := range roles {
			items = append(items, roleResponse(role))
		}
		c.JSON(http.StatusOK, gin.H{"roles": items})
	}
}

// HandleGetRole handles GET /v1/roles/:id
func HandleGetRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
			return
		}

		role, err := repos.Role.GetByID(c.Request.Context(), roleID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, roleResponse(role))
	}
}

// HandleCreateRole handles POST /v1/roles
func HandleCreateRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		roleService := service.NewRoleService(repos, logger)
		role, err := roleService.CreateRole(c.Request.Context(), req.Name, req.Description, req.Permissions)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusCreated, roleResponse(role))
	}
}

// HandleUpdateRole handles PUT /v1/roles/:id
func HandleUpdateRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
			return
		}

		var req RoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		roleService := service.NewRoleService(repos, logger)
		role, err := roleService.UpdateRole(c.Request.Context(), roleID, req.Description, req.Permissions)
		if err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, roleResponse(role))
	}
}

// HandleDeleteRole handles DELETE /v1/roles/:id
// Protected roles (Admin, Support, Manager) are rejected before any delete is
// issued, whatever the caller's privilege.
func HandleDeleteRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
			return
		}

		roleService := service.NewRoleService(repos, logger)
		if err := roleService.DeleteRole(c.Request.Context(), roleID); err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": roleID.String()})
	}
}

// HandleAssignRole handles POST /v1/users/:id/role
func HandleAssignRole(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var req AssignRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		roleID, err := uuid.Parse(req.RoleID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role id"})
			return
		}

		roleService := service.NewRoleService(repos, logger)
		if err := roleService.AssignRole(c.Request.Context(), userID, roleID); err != nil {
			writeDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "role_id": roleID.String()})
	}
}
