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

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, full_name, api_key_hash, role_id, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, full_name, api_key_hash, role_id, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), email)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, full_name, api_key_hash, role_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, user.Email, user.FullName, user.APIKeyHash, user.RoleID, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return &errors.ErrPersistence{Op: "create user", Err: err}
	}

	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, userID uuid.UUID, roleID uuid.UUID) error {
	query := `UPDATE users SET role_id = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, roleID, time.Now())
	if err != nil {
		r.logger.Error("Failed to update user role", zap.Error(err))
		return &errors.ErrPersistence{Op: "update user role", Err: err}
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return &errors.ErrNotFound{Resource: "user", ID: userID.String()}
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row, ref string) (*domain.User, error) {
	var user domain.User
	var roleID uuid.NullUUID

	err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.APIKeyHash, &roleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "user", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "get user", Err: err}
	}

	if roleID.Valid {
		user.RoleID = &roleID.UUID
	}

	return &user, nil
}
