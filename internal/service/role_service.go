package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/authz"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/repository"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type roleService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(repos *repository.Repositories, logger *zap.Logger) *roleService {
	return &roleService{
		repos:  repos,
		logger: logger,
	}
}

// CreateRole creates a role after normalizing its permissions document
// against the schema. Roles named Admin, Support or Manager are created with
// the protected flag set.
func (s *roleService) CreateRole(ctx context.Context, name, description string, permissions domain.Permissions) (*domain.Role, error) {
	if name == "" {
		return nil, &errors.ErrValidation{
			Message: "role name is required",
			Fields:  map[string]string{"name": "required"},
		}
	}

	normalized, err := authz.NormalizePermissions(permissions)
	if err != nil {
		return nil, err
	}

	role := &domain.Role{
		Name:        name,
		Description: description,
		Permissions: normalized,
		Protected:   domain.IsProtectedRole(name),
	}

	if err := s.repos.Role.Create(ctx, role); err != nil {
		s.logger.Error("Failed to create role", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return role, nil
}

// UpdateRole replaces a role's description and permissions. The permissions
// document is normalized, so roles saved under an older schema pick up the
// current shape on their next write. The protected flag is never cleared by
// an update.
func (s *roleService) UpdateRole(ctx context.Context, roleID uuid.UUID, description string, permissions domain.Permissions) (*domain.Role, error) {
	role, err := s.repos.Role.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	normalized, err := authz.NormalizePermissions(permissions)
	if err != nil {
		return nil, err
	}

	role.Description = description
	role.Permissions = normalized

	if err := s.repos.Role.Update(ctx, role); err != nil {
		s.logger.Error("Failed to update role", zap.String("role_id", roleID.String()), zap.Error(err))
		return nil, err
	}

	return role, nil
}

// DeleteRole deletes a role. The protected-role veto fires on the persisted
// flag or the name, before the delete is issued, whatever the caller's
// privilege.
func (s *roleService) DeleteRole(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.repos.Role.GetByID(ctx, roleID)
	if err != nil {
		return err
	}

	if role.Protected || domain.IsProtectedRole(role.Name) {
		return &errors.ErrProtectedRole{Name: role.Name}
	}

	if err := s.repos.Role.Delete(ctx, roleID); err != nil {
		s.logger.Error("Failed to delete role", zap.String("role_id", roleID.String()), zap.Error(err))
		return err
	}

	return nil
}

// AssignRole assigns a role to a staff user
func (s *roleService) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	if _, err := s.repos.Role.GetByID(ctx, roleID); err != nil {
		return err
	}
	return s.repos.User.UpdateRole(ctx, userID, roleID)
}

// CheckAccess answers whether the role grants action on section. Users with
// no role get no access.
func (s *roleService) CheckAccess(ctx context.Context, roleID *uuid.UUID, section domain.PermissionSection, action domain.PermissionAction) (bool, error) {
	if roleID == nil {
		return false, nil
	}

	role, err := s.repos.Role.GetByID(ctx, *roleID)
	if err != nil {
		return false, err
	}

	// Full admin access short-circuits object sections.
	if section != domain.SectionAdmin {
		if isAdmin, err := authz.HasPermission(role.Permissions, domain.SectionAdmin, ""); err == nil && isAdmin {
			return true, nil
		}
	}

	return authz.HasPermission(role.Permissions, section, action)
}

// SeedDefaultRoles creates the built-in roles that are missing. Existing
// roles are left untouched.
func (s *roleService) SeedDefaultRoles(ctx context.Context) error {
	seeds := []struct {
		name        string
		description string
	}{
		{"Admin", "Full access to every portal area"},
		{"Manager", "Operations oversight without user administration"},
		{"Support", "Customer support and shipment visibility"},
		{"Dispatcher", "Shipment booking and status updates"},
	}

	for _, seed := range seeds {
		if _, err := s.repos.Role.GetByName(ctx, seed.name); err == nil {
			continue
		} else if _, ok := err.(*errors.ErrNotFound); !ok {
			return err
		}

		if _, err := s.CreateRole(ctx, seed.name, seed.description, authz.DefaultRolePermissions(seed.name)); err != nil {
			return err
		}
		s.logger.Info("Seeded default role", zap.String("name", seed.name))
	}

	return nil
}
