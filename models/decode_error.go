package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField             = errors.New("missing field")
	ErrUnsupportedAttributeType = errors.New("unsupported attribute type")
	ErrInvalidEnumValue         = errors.New("invalid enum value")
)

// DecodeError reports why a feed record could not become a Location.
// Kind is one of the Err* sentinels above and is reachable through errors.Is.
type DecodeError struct {
	Kind  error
	Field string
	Value string
}

func (e *DecodeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("decode location: %v %q: %q", e.Kind, e.Field, e.Value)
	}
	return fmt.Sprintf("decode location: %v %q", e.Kind, e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func missingField(field string) *DecodeError {
	return &DecodeError{Kind: ErrMissingField, Field: field}
}

func unsupportedAttributeType(field string) *DecodeError {
	return &DecodeError{Kind: ErrUnsupportedAttributeType, Field: field}
}

func invalidEnumValue(field, value string) *DecodeError {
	return &DecodeError{Kind: ErrInvalidEnumValue, Field: field, Value: value}
}
