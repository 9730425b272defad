package worker

import (
	"context"
	"database/sql"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

// Recorder writes order events into the order_events table. The raw payload
// is kept verbatim so the trail stays useful if the event shape evolves.
type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, event domain.OrderEvent, payload []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_events (order_id, event_type, payload)
		VALUES ($1, $2, $3)
	`, event.OrderID, string(event.Type), payload)
	return err
}
