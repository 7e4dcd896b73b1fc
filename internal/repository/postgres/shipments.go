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

type shipmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShipmentRepository creates a new shipment repository
func NewShipmentRepository(db *sql.DB, logger *zap.Logger) *shipmentRepository {
	return &shipmentRepository{db: db, logger: logger}
}

const shipmentColumns = `id, tracking_number, status, sender_name, sender_phone, sender_email,
	recipient_name, recipient_phone, origin_city, destination_city,
	collection_address, delivery_address, metadata, price_gbp, cancel_reason,
	created_at, updated_at`

func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	query := `
		INSERT INTO shipments (
			tracking_number, status, sender_name, sender_phone, sender_email,
			recipient_name, recipient_phone, origin_city, destination_city,
			collection_address, delivery_address, metadata, price_gbp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	collectionJSON, err := json.Marshal(shipment.CollectionAddress)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal collection address", Err: err}
	}
	deliveryJSON, err := json.Marshal(shipment.DeliveryAddress)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal delivery address", Err: err}
	}
	metadataJSON, err := json.Marshal(shipment.Metadata)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal shipment metadata", Err: err}
	}

	err = r.db.QueryRowContext(ctx, query,
		shipment.TrackingNumber,
		shipment.Status,
		shipment.SenderName,
		shipment.SenderPhone,
		shipment.SenderEmail,
		shipment.RecipientName,
		shipment.RecipientPhone,
		shipment.OriginCity,
		shipment.DestinationCity,
		collectionJSON,
		deliveryJSON,
		metadataJSON,
		shipment.PriceGBP,
	).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create shipment", zap.Error(err))
		return &errors.ErrPersistence{Op: "create shipment", Err: err}
	}

	return nil
}

func (r *shipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	return r.scanShipment(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *shipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_number = $1`
	return r.scanShipment(r.db.QueryRowContext(ctx, query, trackingNumber), trackingNumber)
}

// UpdateStatus issues a compare-and-swap write: the row only changes while its
// status still equals expectedCurrent, so two racing actors cannot both win.
func (r *shipmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ShipmentStatus, expectedCurrent domain.ShipmentStatus, cancelReason *string) error {
	query := `
		UPDATE shipments
		SET status = $2, cancel_reason = COALESCE($3, cancel_reason), updated_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query, id, status, cancelReason, time.Now(), expectedCurrent)
	if err != nil {
		r.logger.Error("Failed to update shipment status", zap.Error(err))
		return &errors.ErrPersistence{Op: "update shipment status", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &errors.ErrPersistence{Op: "update shipment status", Err: err}
	}
	if affected == 0 {
		// Either the shipment is gone or its status moved under us.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return &errors.ErrConflict{Message: "shipment status changed concurrently"}
	}

	return nil
}

func (r *shipmentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + `
		FROM shipments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryShipments(ctx, query, limit, offset)
}

func (r *shipmentRepository) ListByStatus(ctx context.Context, status domain.ShipmentStatus, limit, offset int) ([]*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + `
		FROM shipments WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryShipments(ctx, query, status, limit, offset)
}

func (r *shipmentRepository) queryShipments(ctx context.Context, query string, args ...interface{}) ([]*domain.Shipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list shipments", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "list shipments", Err: err}
	}
	defer rows.Close()

	var shipments []*domain.Shipment
	for rows.Next() {
		shipment, err := r.scanShipmentRow(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrPersistence{Op: "list shipments", Err: err}
	}

	return shipments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *shipmentRepository) scanShipment(row *sql.Row, ref string) (*domain.Shipment, error) {
	shipment, err := scanShipmentFrom(row)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "shipment", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get shipment", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "get shipment", Err: err}
	}
	return shipment, nil
}

func (r *shipmentRepository) scanShipmentRow(rows *sql.Rows) (*domain.Shipment, error) {
	shipment, err := scanShipmentFrom(rows)
	if err != nil {
		r.logger.Error("Failed to scan shipment row", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "scan shipment", Err: err}
	}
	return shipment, nil
}

func scanShipmentFrom(s rowScanner) (*domain.Shipment, error) {
	var shipment domain.Shipment
	var senderEmail sql.NullString
	var cancelReason sql.NullString
	var collectionJSON, deliveryJSON, metadataJSON []byte

	err := s.Scan(
		&shipment.ID,
		&shipment.TrackingNumber,
		&shipment.Status,
		&shipment.SenderName,
		&shipment.SenderPhone,
		&senderEmail,
		&shipment.RecipientName,
		&shipment.RecipientPhone,
		&shipment.OriginCity,
		&shipment.DestinationCity,
		&collectionJSON,
		&deliveryJSON,
		&metadataJSON,
		&shipment.PriceGBP,
		&cancelReason,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if senderEmail.Valid {
		shipment.SenderEmail = &senderEmail.String
	}
	if cancelReason.Valid {
		shipment.CancelReason = &cancelReason.String
	}
	if len(collectionJSON) > 0 {
		if err := json.Unmarshal(collectionJSON, &shipment.CollectionAddress); err != nil {
			return nil, err
		}
	}
	if len(deliveryJSON) > 0 {
		if err := json.Unmarshal(deliveryJSON, &shipment.DeliveryAddress); err != nil {
			return nil, err
		}
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &shipment.Metadata); err != nil {
			return nil, err
		}
	}

	return &shipment, nil
}
