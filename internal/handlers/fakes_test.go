package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vibecoding/landing-service/internal/models"
	"github.com/vibecoding/landing-service/internal/store"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory stand-in for the Postgres gateway. It enforces
// the same uniqueness semantics: one row per phone, one row per event id.
type fakeStore struct {
	leadsByPhone map[string]models.Lead
	leadsByID    map[string]models.Lead
	events       map[string]models.EventLog

	failLeads  bool
	failEvents bool

	eventInserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leadsByPhone: map[string]models.Lead{},
		leadsByID:    map[string]models.Lead{},
		events:       map[string]models.EventLog{},
	}
}

func (f *fakeStore) CreateLead(_ context.Context, name, phone string) (models.Lead, error) {
	if f.failLeads {
		return models.Lead{}, errStoreDown
	}
	if _, ok := f.leadsByPhone[phone]; ok {
		return models.Lead{}, store.ErrDuplicatePhone
	}
	lead := models.Lead{ID: uuid.New().String(), Name: name, Phone: phone}
	f.leadsByPhone[phone] = lead
	f.leadsByID[lead.ID] = lead
	return lead, nil
}

func (f *fakeStore) FindLeadByID(_ context.Context, id string) (*models.Lead, error) {
	lead, ok := f.leadsByID[id]
	if !ok {
		return nil, nil
	}
	return &lead, nil
}

func (f *fakeStore) CreateEventLog(_ context.Context, e models.NewEventLog) (models.EventLog, error) {
	f.eventInserts++
	if f.failEvents {
		return models.EventLog{}, errStoreDown
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if _, ok := f.events[e.ID]; ok {
		return models.EventLog{}, store.ErrDuplicateEventID
	}
	row := models.EventLog{ID: e.ID, Type: e.Type, Source: e.Source, Payload: e.Payload, LeadID: e.LeadID}
	f.events[e.ID] = row
	return row, nil
}

// recordedEvent captures one Recorder.Record call.
type recordedEvent struct {
	Type    string
	Payload map[string]any
	LeadID  *string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (f *fakeRecorder) Record(_ context.Context, eventType string, payload map[string]any, leadID *string) {
	f.events = append(f.events, recordedEvent{Type: eventType, Payload: payload, LeadID: leadID})
}

func (f *fakeRecorder) byType(eventType string) []recordedEvent {
	var out []recordedEvent
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
