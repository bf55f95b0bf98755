package handlers

import (
	"context"

	"github.com/vibecoding/landing-service/internal/models"
)

// Store is the persistence gateway surface the handlers depend on.
// *store.PostgresStore satisfies it; tests substitute in-memory fakes.
type Store interface {
	CreateLead(ctx context.Context, name, phone string) (models.Lead, error)
	FindLeadByID(ctx context.Context, id string) (*models.Lead, error)
	CreateEventLog(ctx context.Context, e models.NewEventLog) (models.EventLog, error)
}

// Recorder is the best-effort audit writer. Implementations never return
// errors; failures stay on the server side.
type Recorder interface {
	Record(ctx context.Context, eventType string, payload map[string]any, leadID *string)
}
