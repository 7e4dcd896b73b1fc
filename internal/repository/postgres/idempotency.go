package postgres

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type idempotencyKeyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdempotencyKeyRepository creates a new idempotency key repository
func NewIdempotencyKeyRepository(db *sql.DB, logger *zap.Logger) *idempotencyKeyRepository {
	return &idempotencyKeyRepository{db: db, logger: logger}
}

// GetByKey returns nil, nil when the key has not been seen before.
func (r *idempotencyKeyRepository) GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error) {
	query := `
		SELECT key, shipment_id, request_hash, created_at
		FROM idempotency_keys
		WHERE key = $1
	`

	var record domain.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key).
		Scan(&record.Key, &record.ShipmentID, &record.RequestHash, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get idempotency key", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "get idempotency key", Err: err}
	}

	return &record, nil
}

func (r *idempotencyKeyRepository) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	query := `
		INSERT INTO idempotency_keys (key, shipment_id, request_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, key.Key, key.ShipmentID, key.RequestHash)
	if err != nil {
		r.logger.Error("Failed to create idempotency key", zap.Error(err))
		return &errors.ErrPersistence{Op: "create idempotency key", Err: err}
	}

	return nil
}
