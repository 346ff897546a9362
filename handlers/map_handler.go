package handlers

import (
	"encoding/json"
	stderrors "errors"
	"mapify-server/middleware"
	"mapify-server/models"
	"mapify-server/network"
	"mapify-server/services"
	"mapify-server/utils/errors"
	"net/http"
)

type MapHandler struct {
	mapService  *services.MapService
	coordinator *services.MapCoordinator
}

type LocationTypeResponse struct {
	Type        models.LocationType `json:"type"`
	Title       string              `json:"title"`
	FilterTitle string              `json:"filter_title"`
	IconName    string              `json:"icon_name"`
	Selected    bool                `json:"selected"`
}

type LocationsResponse struct {
	Locations []models.Location `json:"locations"`
	Count     int               `json:"count"`
}

type SelectionResponse struct {
	Location     models.Location `json:"location"`
	Title        string          `json:"title"`
	IconName     string          `json:"icon_name"`
	RevenueLabel string          `json:"revenue_label"`
}

// EventRequest is the body of POST /events. Type is used by toggle_filter,
// LocationID by select_location.
type EventRequest struct {
	Event      services.EventKind `json:"event"`
	Type       string             `json:"type,omitempty"`
	LocationID *int               `json:"location_id,omitempty"`
}

func NewMapHandler(mapService *services.MapService, coordinator *services.MapCoordinator) *MapHandler {
	return &MapHandler{mapService: mapService, coordinator: coordinator}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *MapHandler) GetLocationTypes(w http.ResponseWriter, r *http.Request) {
	selected := make(map[models.LocationType]bool)
	for _, t := range h.mapService.SelectedFilters() {
		selected[t] = true
	}

	var types []LocationTypeResponse
	for _, t := range models.AllLocationTypes() {
		types = append(types, LocationTypeResponse{
			Type:        t,
			Title:       t.Title(),
			FilterTitle: t.FilterTitle(),
			IconName:    t.IconName(),
			Selected:    selected[t],
		})
	}
	writeJSON(w, types)
}

func (h *MapHandler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.mapService.View())
}

func (h *MapHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	locations := h.mapService.AllLocations()
	writeJSON(w, LocationsResponse{Locations: locations, Count: len(locations)})
}

func (h *MapHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.mapService.SelectedLocation()
	if !ok {
		middleware.WriteError(w, errors.ErrNotFound)
		return
	}
	writeJSON(w, SelectionResponse{
		Location:     loc,
		Title:        loc.Type.Title(),
		IconName:     loc.Type.IconName(),
		RevenueLabel: loc.RevenueLabel(),
	})
}

func (h *MapHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var input EventRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	event, err := h.toEvent(input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if err := h.coordinator.Send(event); err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, h.mapService.View())
}

func (h *MapHandler) toEvent(input EventRequest) (services.Event, error) {
	switch input.Event {
	case services.EventToggleFilter:
		t, ok := models.ParseLocationType(input.Type)
		if !ok {
			return services.Event{}, errors.ErrInvalidType.WithDetails(input.Type)
		}
		return services.ToggleFilterEvent(t), nil
	case services.EventSelectLocation:
		if input.LocationID == nil {
			return services.Event{}, errors.ErrInvalidInput
		}
		loc, ok := h.mapService.LocationByID(*input.LocationID)
		if !ok {
			return services.Event{}, errors.ErrNotFound
		}
		return services.SelectLocationEvent(loc), nil
	}
	return services.Event{Kind: input.Event}, nil
}

// Refresh runs a fetch and waits for it to be applied.
func (h *MapHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.mapService.Refresh(r.Context())
	var netErr *network.NetworkError
	switch {
	case err == nil:
	case stderrors.As(err, &netErr):
		middleware.WriteError(w, errors.Wrap(err, errors.ErrUpstream.Code, errors.ErrUpstream.Message, errors.ErrUpstream.Status))
		return
	default:
		middleware.WriteError(w, err)
		return
	}
	locations := h.mapService.AllLocations()
	writeJSON(w, LocationsResponse{Locations: locations, Count: len(locations)})
}
