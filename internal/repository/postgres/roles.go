package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type roleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB, logger *zap.Logger) *roleRepository {
	return &roleRepository{db: db, logger: logger}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	query := `
		INSERT INTO roles (name, description, permissions, protected)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	permissionsJSON, err := json.Marshal(role.Permissions)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal permissions", Err: err}
	}

	err = r.db.QueryRowContext(ctx, query, role.Name, role.Description, permissionsJSON, role.Protected).
		Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create role", zap.Error(err))
		return &errors.ErrPersistence{Op: "create role", Err: err}
	}

	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	query := `
		SELECT id, name, description, permissions, protected, created_at, updated_at
		FROM roles
		WHERE id = $1
	`
	return r.scanRole(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	query := `
		SELECT id, name, description, permissions, protected, created_at, updated_at
		FROM roles
		WHERE name = $1
	`
	return r.scanRole(r.db.QueryRowContext(ctx, query, name), name)
}

func (r *roleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	query := `
		SELECT id, name, description, permissions, protected, created_at, updated_at
		FROM roles
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list roles", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "list roles", Err: err}
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		var permissionsJSON []byte
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &permissionsJSON, &role.Protected, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, &errors.ErrPersistence{Op: "scan role", Err: err}
		}
		if len(permissionsJSON) > 0 {
			if err := json.Unmarshal(permissionsJSON, &role.Permissions); err != nil {
				return nil, &errors.ErrPersistence{Op: "unmarshal permissions", Err: err}
			}
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrPersistence{Op: "list roles", Err: err}
	}

	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	query := `
		UPDATE roles
		SET name = $2, description = $3, permissions = $4, updated_at = $5
		WHERE id = $1
	`

	permissionsJSON, err := json.Marshal(role.Permissions)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal permissions", Err: err}
	}

	result, err := r.db.ExecContext(ctx, query, role.ID, role.Name, role.Description, permissionsJSON, time.Now())
	if err != nil {
		r.logger.Error("Failed to update role", zap.Error(err))
		return &errors.ErrPersistence{Op: "update role", Err: err}
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "role", ID: role.ID.String()}
	}

	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete role", zap.Error(err))
		return &errors.ErrPersistence{Op: "delete role", Err: err}
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "role", ID: id.String()}
	}

	return nil
}

func (r *roleRepository) scanRole(row *sql.Row, ref string) (*domain.Role, error) {
	var role domain.Role
	var permissionsJSON []byte

	err := row.Scan(&role.ID, &role.Name, &role.Description, &permissionsJSON, &role.Protected, &role.CreatedAt, &role.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "role", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get role", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "get role", Err: err}
	}

	if len(permissionsJSON) > 0 {
		if err := json.Unmarshal(permissionsJSON, &role.Permissions); err != nil {
			return nil, &errors.ErrPersistence{Op: "unmarshal permissions", Err: err}
		}
	}

	return &role, nil
}
