package services

import (
	"errors"
	"reflect"
	"testing"

	"mapify-server/models"
	apierrors "mapify-server/utils/errors"
)

func TestCoordinatorAppliesEvents(t *testing.T) {
	s := newLoadedService(t)
	c := NewMapCoordinator(s)
	museum := exampleOfType(models.Museum)

	steps := []struct {
		event   Event
		filters []models.LocationType
		panel   bool
		hasSel  bool
	}{
		{ToggleFilterPanelEvent(), []models.LocationType{}, true, false},
		{ToggleFilterEvent(models.Museum), []models.LocationType{models.Museum}, true, false},
		{ToggleFilterEvent(models.Bar), []models.LocationType{models.Museum, models.Bar}, true, false},
		{SelectLocationEvent(museum), []models.LocationType{models.Museum, models.Bar}, true, true},
		{ClearFiltersEvent(), []models.LocationType{}, true, true},
		{DismissSelectionEvent(), []models.LocationType{}, true, false},
		{ToggleFilterPanelEvent(), []models.LocationType{}, false, false},
	}

	for i, step := range steps {
		if err := c.Send(step.event); err != nil {
			t.Fatalf("step %d (%s): %v", i, step.event.Kind, err)
		}
		view := s.View()
		if !reflect.DeepEqual(view.SelectedFilters, step.filters) {
			t.Errorf("step %d (%s): filters = %v, want %v", i, step.event.Kind, view.SelectedFilters, step.filters)
		}
		if view.IsShowingFilterPanel != step.panel {
			t.Errorf("step %d (%s): panel = %v, want %v", i, step.event.Kind, view.IsShowingFilterPanel, step.panel)
		}
		if (view.SelectedLocation != nil) != step.hasSel {
			t.Errorf("step %d (%s): selected = %v, want present=%v", i, step.event.Kind, view.SelectedLocation, step.hasSel)
		}
	}
}

func TestCoordinatorRejectsBadEvents(t *testing.T) {
	s := newLoadedService(t)
	c := NewMapCoordinator(s)

	if err := c.Send(Event{Kind: "teleport"}); !errors.Is(err, apierrors.ErrUnknownEvent) {
		t.Errorf("unknown event: got %v", err)
	}
	if err := c.Send(ToggleFilterEvent("spaceship")); !errors.Is(err, apierrors.ErrInvalidType) {
		t.Errorf("invalid type: got %v", err)
	}
	if got := s.SelectedFilters(); len(got) != 0 {
		t.Errorf("rejected events changed filters to %v", got)
	}
}
