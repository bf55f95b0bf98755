package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vibecoding/landing-service/internal/models"
	"github.com/vibecoding/landing-service/internal/store"
)

type captureStore struct {
	last models.NewEventLog
	err  error
}

func (c *captureStore) CreateEventLog(_ context.Context, e models.NewEventLog) (models.EventLog, error) {
	c.last = e
	if c.err != nil {
		return models.EventLog{}, c.err
	}
	return models.EventLog{ID: "generated", Type: e.Type, Source: e.Source}, nil
}

func TestRecord_WritesAppSourcedEvent(t *testing.T) {
	st := &captureStore{}
	rec := NewRecorder(st, zap.NewNop().Sugar())

	leadID := "11111111-2222-4333-8444-555555555555"
	rec.Record(context.Background(), "lead_created", map[string]any{"lead_id": leadID}, &leadID)

	assert.Equal(t, "lead_created", st.last.Type)
	assert.Equal(t, "app", st.last.Source)
	assert.JSONEq(t, `{"lead_id":"11111111-2222-4333-8444-555555555555"}`, string(st.last.Payload))
	require.NotNil(t, st.last.LeadID)
	assert.Equal(t, leadID, *st.last.LeadID)
}

func TestRecord_NilPayloadStoresNoPayload(t *testing.T) {
	st := &captureStore{}
	rec := NewRecorder(st, zap.NewNop().Sugar())

	rec.Record(context.Background(), "landing_view", nil, nil)

	assert.Nil(t, st.last.Payload)
}

func TestRecord_SwallowsStorageFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	st := &captureStore{err: errors.New("connection refused")}
	rec := NewRecorder(st, zap.New(core).Sugar())

	// Must not panic or propagate anything.
	rec.Record(context.Background(), "cta_click", map[string]any{"phone": "+1"}, nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "audit write failed", logs.All()[0].Message)
}

func TestRecord_SwallowsDuplicate(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	st := &captureStore{err: store.ErrDuplicateEventID}
	rec := NewRecorder(st, zap.New(core).Sugar())

	rec.Record(context.Background(), "cta_click", nil, nil)

	assert.Equal(t, 1, logs.Len())
}
