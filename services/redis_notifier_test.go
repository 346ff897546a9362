package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"mapify-server/models"
)

func TestEncodeStateMessage(t *testing.T) {
	cafe := exampleOfType(models.Cafe)
	view := ViewState{
		VisibleLocations:    []models.Location{cafe},
		SelectedFilters:     []models.LocationType{models.Cafe},
		SelectedFilterCount: 1,
		SelectedLocation:    &cafe,
	}
	now := time.Date(2024, 9, 26, 12, 0, 0, 0, time.UTC)

	payload, err := encodeStateMessage(view, now)
	if err != nil {
		t.Fatalf("encodeStateMessage: %v", err)
	}

	var msg StateMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := uuid.Parse(msg.EventID); err != nil {
		t.Errorf("event id %q is not a UUID: %v", msg.EventID, err)
	}
	if !msg.PublishedAt.Equal(now) {
		t.Errorf("published at %v, want %v", msg.PublishedAt, now)
	}
	if len(msg.View.VisibleLocations) != 1 || msg.View.VisibleLocations[0] != cafe {
		t.Errorf("visible = %+v", msg.View.VisibleLocations)
	}
	if msg.View.SelectedLocation == nil || *msg.View.SelectedLocation != cafe {
		t.Errorf("selected = %+v", msg.View.SelectedLocation)
	}
}

func TestEncodeStateMessageUsesFreshIDs(t *testing.T) {
	a, _ := encodeStateMessage(ViewState{}, time.Now())
	b, _ := encodeStateMessage(ViewState{}, time.Now())
	var ma, mb StateMessage
	json.Unmarshal(a, &ma)
	json.Unmarshal(b, &mb)
	if ma.EventID == mb.EventID {
		t.Error("two messages shared an event id")
	}
}
