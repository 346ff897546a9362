package services

import (
	"mapify-server/models"
	"mapify-server/utils/errors"
)

type EventKind string

const (
	EventClearFilters      EventKind = "clear_filters"
	EventToggleFilterPanel EventKind = "toggle_filter_panel"
	EventToggleFilter      EventKind = "toggle_filter"
	EventDismissSelection  EventKind = "dismiss_selection"
	EventSelectLocation    EventKind = "select_location"
)

// Event is a user intent. Type is set for EventToggleFilter and Location
// for EventSelectLocation.
type Event struct {
	Kind     EventKind
	Type     models.LocationType
	Location models.Location
}

func ClearFiltersEvent() Event      { return Event{Kind: EventClearFilters} }
func ToggleFilterPanelEvent() Event { return Event{Kind: EventToggleFilterPanel} }
func DismissSelectionEvent() Event  { return Event{Kind: EventDismissSelection} }

func ToggleFilterEvent(t models.LocationType) Event {
	return Event{Kind: EventToggleFilter, Type: t}
}

func SelectLocationEvent(loc models.Location) Event {
	return Event{Kind: EventSelectLocation, Location: loc}
}

// MapCoordinator applies events to a MapService one at a time, in the order
// they are sent. It holds no state of its own.
type MapCoordinator struct {
	service *MapService
}

func NewMapCoordinator(service *MapService) *MapCoordinator {
	return &MapCoordinator{service: service}
}

func (c *MapCoordinator) Send(event Event) error {
	switch event.Kind {
	case EventClearFilters:
		c.service.ClearFilters()
	case EventToggleFilterPanel:
		c.service.ToggleFilterPanel()
	case EventToggleFilter:
		if !event.Type.Valid() {
			return errors.ErrInvalidType.WithDetails(string(event.Type))
		}
		c.service.ToggleFilter(event.Type)
	case EventDismissSelection:
		c.service.ClearSelection()
	case EventSelectLocation:
		c.service.Select(event.Location)
	default:
		return errors.ErrUnknownEvent.WithDetails(string(event.Kind))
	}
	return nil
}
