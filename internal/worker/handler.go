package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Aldonvacriates/E-Commerce-API/internal/domain"
)

// EventRecorder persists one order event into the audit trail.
type EventRecorder interface {
	Record(ctx context.Context, event domain.OrderEvent, payload []byte) error
}

// AuditHandler consumes order lifecycle events and records them so order
// history survives order deletion.
type AuditHandler struct {
	recorder EventRecorder
	logger   *slog.Logger
}

func NewAuditHandler(recorder EventRecorder, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		recorder: recorder,
		logger:   logger,
	}
}

func (h *AuditHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order event missing order_id")
	}

	if err := h.recorder.Record(ctx, event, payload); err != nil {
		h.logger.Error("failed to record order event", "error", err, "order_id", event.OrderID, "type", event.Type)
		return fmt.Errorf("record order event: %w", err)
	}

	h.logger.Info("order event recorded", "order_id", event.OrderID, "type", event.Type)
	return nil
}
