package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// Attribute names recognized in a feed record. Others are ignored.
const (
	AttrLocationType     = "location_type"
	AttrName             = "name"
	AttrDescription      = "description"
	AttrEstimatedRevenue = "estimated_revenue_millions"
)

// FeedLocation is a Location in the feed's wire form: id, latitude and
// longitude as fields and everything else in an attribute list.
type FeedLocation struct {
	Location
}

type feedRecord struct {
	ID         int         `json:"id"`
	Latitude   float64     `json:"latitude"`
	Longitude  float64     `json:"longitude"`
	Attributes []Attribute `json:"attributes"`
}

func (f *FeedLocation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode location: %w", err)
	}

	id, err := decodeInt(fields, "id")
	if err != nil {
		return err
	}
	lat, err := decodeFloat(fields, "latitude")
	if err != nil {
		return err
	}
	lon, err := decodeFloat(fields, "longitude")
	if err != nil {
		return err
	}

	rawAttrs, ok := fields["attributes"]
	if !ok {
		return missingField("attributes")
	}
	var attrs []json.RawMessage
	if err := json.Unmarshal(rawAttrs, &attrs); err != nil || attrs == nil {
		return missingField("attributes")
	}

	// Later duplicates overwrite earlier ones.
	lookup := make(map[string]AttributeValue, len(attrs))
	for _, raw := range attrs {
		var attr Attribute
		if err := attr.UnmarshalJSON(raw); err != nil {
			return err
		}
		lookup[attr.Type] = attr.Value
	}

	loc, err := resolveAttributes(lookup)
	if err != nil {
		return err
	}
	loc.ID = id
	loc.Latitude = lat
	loc.Longitude = lon
	f.Location = loc
	return nil
}

func resolveAttributes(lookup map[string]AttributeValue) (Location, error) {
	var loc Location

	rawType, err := stringAttribute(lookup, AttrLocationType)
	if err != nil {
		return Location{}, err
	}
	t, ok := ParseLocationType(rawType)
	if !ok {
		return Location{}, invalidEnumValue(AttrLocationType, rawType)
	}
	loc.Type = t

	if loc.Name, err = stringAttribute(lookup, AttrName); err != nil {
		return Location{}, err
	}
	if loc.Description, err = stringAttribute(lookup, AttrDescription); err != nil {
		return Location{}, err
	}
	if loc.EstimatedRevenueMillions, err = numberAttribute(lookup, AttrEstimatedRevenue); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func stringAttribute(lookup map[string]AttributeValue, name string) (string, error) {
	v, ok := lookup[name]
	if !ok {
		return "", missingField(name)
	}
	s, ok := v.AsString()
	if !ok {
		return "", unsupportedAttributeType(name)
	}
	return s, nil
}

func numberAttribute(lookup map[string]AttributeValue, name string) (float64, error) {
	v, ok := lookup[name]
	if !ok {
		return 0, missingField(name)
	}
	n, ok := v.AsNumber()
	if !ok {
		return 0, unsupportedAttributeType(name)
	}
	return n, nil
}

func decodeFloat(fields map[string]json.RawMessage, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, missingField(name)
	}
	var n *float64
	if err := json.Unmarshal(raw, &n); err != nil || n == nil {
		return 0, missingField(name)
	}
	return *n, nil
}

const maxExactInt = 1 << 53

// decodeInt accepts integral numbers written with a fraction ("3.0"), which
// some document stores emit for whole doubles.
func decodeInt(fields map[string]json.RawMessage, name string) (int, error) {
	n, err := decodeFloat(fields, name)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || math.Abs(n) > maxExactInt {
		return 0, missingField(name)
	}
	return int(n), nil
}

func (f FeedLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(feedRecord{
		ID:        f.ID,
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
		Attributes: []Attribute{
			{Type: AttrLocationType, Value: StringValue(string(f.Type))},
			{Type: AttrName, Value: StringValue(f.Name)},
			{Type: AttrDescription, Value: StringValue(f.Description)},
			{Type: AttrEstimatedRevenue, Value: NumberValue(f.EstimatedRevenueMillions)},
		},
	})
}

// DecodeFeed decodes a top-level array of feed records. One bad record fails
// the whole batch.
func DecodeFeed(data []byte) ([]Location, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	locations := make([]Location, 0, len(records))
	for i, raw := range records {
		var f FeedLocation
		if err := f.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		locations = append(locations, f.Location)
	}
	return locations, nil
}

func ToFeed(locations []Location) []FeedLocation {
	feed := make([]FeedLocation, len(locations))
	for i, l := range locations {
		feed[i] = FeedLocation{Location: l}
	}
	return feed
}

func FromFeed(feed []FeedLocation) []Location {
	locations := make([]Location, len(feed))
	for i, f := range feed {
		locations[i] = f.Location
	}
	return locations
}
