package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"mapify-server/models"
	"mapify-server/network"
	"mapify-server/utils/errors"
)

// ViewState is a consistent snapshot of everything a renderer may read.
type ViewState struct {
	VisibleLocations     []models.Location     `json:"visible_locations"`
	LocationCount        int                   `json:"location_count"`
	SelectedFilters      []models.LocationType `json:"selected_filters"`
	SelectedFilterCount  int                   `json:"selected_filter_count"`
	SelectedLocation     *models.Location      `json:"selected_location"`
	IsShowingFilterPanel bool                  `json:"is_showing_filter_panel"`
}

// Listener is called with a snapshot after every state change. Listeners
// run in mutation order and may read the MapService, but must not mutate it:
// a mutation from inside a listener blocks forever.
type Listener func(ViewState)

// MapService owns the fetched locations and the viewer's filter and
// selection state. All mutations are applied under one lock, so readers
// never see allLocations and locationsByType out of step.
type MapService struct {
	network network.Network
	request network.Request

	mu                   sync.RWMutex
	allLocations         []models.Location
	locationsByType      map[models.LocationType][]models.Location
	selectedFilters      []models.LocationType
	selectedLocation     *models.Location
	isShowingFilterPanel bool

	fetching atomic.Bool

	listenersMu sync.Mutex
	listeners   []Listener
	notifyMu    sync.Mutex
}

func NewMapService(n network.Network, request network.Request) *MapService {
	return &MapService{
		network:         n,
		request:         request,
		locationsByType: make(map[models.LocationType][]models.Location),
	}
}

func (s *MapService) Subscribe(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Initialize starts a fetch in the background. The returned channel yields
// the outcome once it has been applied, then closes.
func (s *MapService) Initialize(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Refresh(ctx)
	}()
	return done
}

// Refresh fetches all locations and replaces the current data with them.
// At most one fetch runs at a time; a failed fetch leaves state untouched.
func (s *MapService) Refresh(ctx context.Context) error {
	if !s.fetching.CompareAndSwap(false, true) {
		return errors.ErrFetchInFlight
	}
	defer s.fetching.Store(false)

	feed, err := network.Send[[]models.FeedLocation](ctx, s.network, s.request)
	if err != nil {
		log.Printf("Failed to fetch locations: %v", err)
		return err
	}

	locations := models.FromFeed(feed)
	grouped := groupByType(locations)
	s.update(func() {
		s.allLocations = locations
		s.locationsByType = grouped
	})
	log.Printf("Loaded %d locations", len(locations))
	return nil
}

func groupByType(locations []models.Location) map[models.LocationType][]models.Location {
	grouped := make(map[models.LocationType][]models.Location)
	for _, loc := range locations {
		grouped[loc.Type] = append(grouped[loc.Type], loc)
	}
	return grouped
}

// update applies mutate under the state lock, then hands the resulting
// snapshot to listeners after the state lock is released. notifyMu is held
// for the whole call so mutations and their notifications keep one order.
// The state lock is never held while waiting on notifyMu or a listener.
func (s *MapService) update(mutate func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate()
	snapshot := s.viewLocked()
	s.mu.Unlock()

	s.listenersMu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// VisibleLocations applies the selected filters. With no filters every
// location is visible; otherwise the groups of the selected types are
// concatenated in selection order.
func (s *MapService) VisibleLocations() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleLocked()
}

func (s *MapService) visibleLocked() []models.Location {
	visible := []models.Location{}
	if len(s.selectedFilters) == 0 {
		for _, t := range models.AllLocationTypes() {
			visible = append(visible, s.locationsByType[t]...)
		}
		return visible
	}
	for _, t := range s.selectedFilters {
		visible = append(visible, s.locationsByType[t]...)
	}
	return visible
}

func (s *MapService) AllLocations() []models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Location, len(s.allLocations))
	copy(all, s.allLocations)
	return all
}

func (s *MapService) LocationsByType() map[models.LocationType][]models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grouped := make(map[models.LocationType][]models.Location, len(s.locationsByType))
	for t, locs := range s.locationsByType {
		grouped[t] = append([]models.Location(nil), locs...)
	}
	return grouped
}

// LocationByID returns the first fetched location with id. IDs are not
// unique in the feed, so later locations sharing the id are unreachable here.
func (s *MapService) LocationByID(id int) (models.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, loc := range s.allLocations {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.Location{}, false
}

func (s *MapService) SelectedFilters() []models.LocationType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.LocationType{}, s.selectedFilters...)
}

func (s *MapService) SelectedLocation() (models.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedLocation == nil {
		return models.Location{}, false
	}
	return *s.selectedLocation, true
}

func (s *MapService) IsShowingFilterPanel() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isShowingFilterPanel
}

func (s *MapService) View() ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked()
}

func (s *MapService) viewLocked() ViewState {
	view := ViewState{
		VisibleLocations:     s.visibleLocked(),
		LocationCount:        len(s.allLocations),
		SelectedFilters:      append([]models.LocationType{}, s.selectedFilters...),
		SelectedFilterCount:  len(s.selectedFilters),
		IsShowingFilterPanel: s.isShowingFilterPanel,
	}
	if s.selectedLocation != nil {
		selected := *s.selectedLocation
		view.SelectedLocation = &selected
	}
	return view
}

// ToggleFilter removes t from the selected filters if present, otherwise
// appends it.
func (s *MapService) ToggleFilter(t models.LocationType) {
	s.update(func() {
		for i, selected := range s.selectedFilters {
			if selected == t {
				s.selectedFilters = append(s.selectedFilters[:i:i], s.selectedFilters[i+1:]...)
				return
			}
		}
		s.selectedFilters = append(s.selectedFilters, t)
	})
}

func (s *MapService) ClearFilters() {
	s.update(func() {
		s.selectedFilters = nil
	})
}

func (s *MapService) ToggleFilterPanel() {
	s.update(func() {
		s.isShowingFilterPanel = !s.isShowingFilterPanel
	})
}

func (s *MapService) Select(loc models.Location) {
	s.update(func() {
		s.selectedLocation = &loc
	})
}

func (s *MapService) ClearSelection() {
	s.update(func() {
		s.selectedLocation = nil
	})
}
