package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/internal/domain"
	"github.com/Mtho-kozisi/zimbabwe-shipping-nexus-sub001/pkg/errors"
)

type shipmentEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShipmentEventRepository creates a new shipment event repository
func NewShipmentEventRepository(db *sql.DB, logger *zap.Logger) *shipmentEventRepository {
	return &shipmentEventRepository{db: db, logger: logger}
}

func (r *shipmentEventRepository) Create(ctx context.Context, event *domain.ShipmentEvent) error {
	query := `
		INSERT INTO shipment_events (shipment_id, event_type, event_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	eventDataJSON, err := json.Marshal(event.EventData)
	if err != nil {
		return &errors.ErrPersistence{Op: "marshal event data", Err: err}
	}

	err = r.db.QueryRowContext(ctx, query, event.ShipmentID, event.EventType, eventDataJSON).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create shipment event", zap.Error(err))
		return &errors.ErrPersistence{Op: "create shipment event", Err: err}
	}

	return nil
}

func (r *shipmentEventRepository) GetByShipmentID(ctx context.Context, shipmentID uuid.UUID) ([]*domain.ShipmentEvent, error) {
	query := `
		SELECT id, shipment_id, event_type, event_data, created_at
		FROM shipment_events
		WHERE shipment_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, shipmentID)
	if err != nil {
		r.logger.Error("Failed to list shipment events", zap.Error(err))
		return nil, &errors.ErrPersistence{Op: "list shipment events", Err: err}
	}
	defer rows.Close()

	var events []*domain.ShipmentEvent
	for rows.Next() {
		var event domain.ShipmentEvent
		var eventDataJSON []byte
		if err := rows.Scan(&event.ID, &event.ShipmentID, &event.EventType, &eventDataJSON, &event.CreatedAt); err != nil {
			return nil, &errors.ErrPersistence{Op: "scan shipment event", Err: err}
		}
		if len(eventDataJSON) > 0 {
			if err := json.Unmarshal(eventDataJSON, &event.EventData); err != nil {
				return nil, &errors.ErrPersistence{Op: "unmarshal event data", Err: err}
			}
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.ErrPersistence{Op: "list shipment events", Err: err}
	}

	return events, nil
}
