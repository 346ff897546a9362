package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

type AttributeKind int

const (
	StringAttribute AttributeKind = iota + 1
	NumberAttribute
)

var errUnsupportedValue = errors.New("attribute value is neither a string nor a number")

// AttributeValue holds either a string or a number from a feed attribute.
// The zero value holds neither.
type AttributeValue struct {
	kind AttributeKind
	str  string
	num  float64
}

func StringValue(s string) AttributeValue {
	return AttributeValue{kind: StringAttribute, str: s}
}

func NumberValue(n float64) AttributeValue {
	return AttributeValue{kind: NumberAttribute, num: n}
}

func (v AttributeValue) Kind() AttributeKind {
	return v.kind
}

func (v AttributeValue) AsString() (string, bool) {
	return v.str, v.kind == StringAttribute
}

func (v AttributeValue) AsNumber() (float64, bool) {
	return v.num, v.kind == NumberAttribute
}

// UnmarshalJSON tries a string first, then a number. Anything else,
// null included, is rejected.
func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errUnsupportedValue
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberValue(n)
		return nil
	}
	return errUnsupportedValue
}

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case StringAttribute:
		return json.Marshal(v.str)
	case NumberAttribute:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	}
	return nil, errUnsupportedValue
}

// Attribute is one {type, value} entry of a feed record's attribute list.
type Attribute struct {
	Type  string         `json:"type"`
	Value AttributeValue `json:"value"`
}

func (a *Attribute) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  *string         `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return missingField("attributes")
	}
	if raw.Type == nil {
		return missingField("attributes.type")
	}
	var value AttributeValue
	if err := value.UnmarshalJSON(raw.Value); err != nil {
		return unsupportedAttributeType(*raw.Type)
	}
	a.Type = *raw.Type
	a.Value = value
	return nil
}
