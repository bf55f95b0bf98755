package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/vibecoding/landing-service/internal/models"
)

// sourceApp tags audit events originated by the service itself, as opposed
// to events ingested from the payment webhook.
const sourceApp = "app"

// Store is the subset of the persistence gateway the recorder needs.
type Store interface {
	CreateEventLog(ctx context.Context, e models.NewEventLog) (models.EventLog, error)
}

// Recorder writes best-effort audit events.
//
// Audit writes must never block or fail the primary request path, so every
// failure (marshal, duplicate, storage outage) ends at the operational log
// and the caller proceeds regardless.
type Recorder struct {
	store  Store
	logger *zap.SugaredLogger
}

// NewRecorder builds a Recorder on top of the persistence gateway.
func NewRecorder(store Store, logger *zap.SugaredLogger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record appends one audit event with source "app". leadID may be nil.
func (r *Recorder) Record(ctx context.Context, eventType string, payload map[string]any, leadID *string) {
	var raw []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			r.logger.Errorw("audit payload marshal failed", "type", eventType, "error", err)
			return
		}
		raw = b
	}

	_, err := r.store.CreateEventLog(ctx, models.NewEventLog{
		Type:    eventType,
		Source:  sourceApp,
		Payload: raw,
		LeadID:  leadID,
	})
	if err != nil {
		r.logger.Errorw("audit write failed", "type", eventType, "error", err)
	}
}
