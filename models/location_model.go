package models

import (
	"fmt"
	"strings"
)

// LocationType is the closed set of point-of-interest categories shown on the map.
type LocationType string

const (
	Bar        LocationType = "bar"
	Cafe       LocationType = "cafe"
	Landmark   LocationType = "landmark"
	Museum     LocationType = "museum"
	Park       LocationType = "park"
	Restaurant LocationType = "restaurant"
)

var locationTypes = []LocationType{Bar, Cafe, Landmark, Museum, Park, Restaurant}

// AllLocationTypes returns every LocationType in declaration order.
func AllLocationTypes() []LocationType {
	types := make([]LocationType, len(locationTypes))
	copy(types, locationTypes)
	return types
}

// ParseLocationType matches raw against the enum values exactly (case-sensitive).
func ParseLocationType(raw string) (LocationType, bool) {
	for _, t := range locationTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

func (t LocationType) Valid() bool {
	_, ok := ParseLocationType(string(t))
	return ok
}

// Title is the capitalized display name, e.g. "Cafe".
func (t LocationType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// FilterTitle is the plural label used in the filter list.
func (t LocationType) FilterTitle() string {
	return t.Title() + "s"
}

func (t LocationType) IconName() string {
	switch t {
	case Bar:
		return "wineglass"
	case Cafe:
		return "cup.and.saucer"
	case Landmark:
		return "binoculars"
	case Museum:
		return "building.columns"
	case Park:
		return "tree"
	case Restaurant:
		return "fork.knife"
	}
	return ""
}

// Location is a decoded point of interest.
//
// Two locations are the same location when their IDs match, regardless of the
// other fields. The upstream feed reuses IDs across categories, so Equal can
// report true for two different places.
type Location struct {
	ID                       int          `json:"id" bson:"id"`
	Latitude                 float64      `json:"latitude" bson:"latitude"`
	Longitude                float64      `json:"longitude" bson:"longitude"`
	Type                     LocationType `json:"type" bson:"type"`
	Name                     string       `json:"name" bson:"name"`
	Description              string       `json:"description" bson:"description"`
	EstimatedRevenueMillions float64      `json:"estimated_revenue_millions" bson:"estimated_revenue_millions"`
}

func (l Location) Equal(other Location) bool {
	return l.ID == other.ID
}

// Coordinate returns the location as a [lon, lat] pair.
func (l Location) Coordinate() [2]float64 {
	return [2]float64{l.Longitude, l.Latitude}
}

func (l Location) RevenueLabel() string {
	return fmt.Sprintf("Est. Revenue: %.1f M", l.EstimatedRevenueMillions)
}

// ExampleLocations are the six sample locations used for previews and the
// fixture-backed network stub. IDs 0 and 1 are each used twice, as in the
// upstream sample data.
func ExampleLocations() []Location {
	return []Location{
		{ID: 0, Latitude: 37.7743, Longitude: -122.4195, Type: Bar, Name: "Golden Gate Bar", Description: "Lively bar with craft beers.", EstimatedRevenueMillions: 100},
		{ID: 0, Latitude: 37.7744, Longitude: -122.4196, Type: Cafe, Name: "Golden Gate Cafe", Description: "A cafe serving delicious food and drinks.", EstimatedRevenueMillions: 10},
		{ID: 1, Latitude: 37.7745, Longitude: -122.4197, Type: Landmark, Name: "Golden Gate Bridge", Description: "A landmark bridge spanning the Golden Gate.", EstimatedRevenueMillions: 100},
		{ID: 2, Latitude: 37.7746, Longitude: -122.4198, Type: Museum, Name: "Golden Gate Museum", Description: "A museum dedicated to the history of the bay.", EstimatedRevenueMillions: 1},
		{ID: 36, Latitude: 37.7747, Longitude: -122.4199, Type: Park, Name: "Patricia's Green", Description: "Community park with art installations.", EstimatedRevenueMillions: 7.4},
		{ID: 1, Latitude: 37.7750, Longitude: -122.4195, Type: Restaurant, Name: "Golden Gate Grill", Description: "A popular eatery with views of the bay.", EstimatedRevenueMillions: 10.5},
	}
}
