package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// DefaultLocationsURL is the public locations feed.
const DefaultLocationsURL = "https://raw.githubusercontent.com/galbernator/coding-exercises/refs/heads/master/mobile/map-locations/locations.json"

// Request identifies a resource to fetch. Requests are comparable so stubs
// can match them by equality.
type Request struct {
	Method string
	URL    string
}

func LocationsRequest(url string) Request {
	return Request{Method: http.MethodGet, URL: url}
}

// Network sends a request and decodes the response payload into out, which
// must be a non-nil pointer. Every call returns either nil or a
// *NetworkError, and out is only written when the call succeeds.
type Network interface {
	Send(ctx context.Context, req Request, out any) error
}

// Send decodes into a fresh T so callers never see partially decoded data.
func Send[T any](ctx context.Context, n Network, req Request) (T, error) {
	var v T
	if err := n.Send(ctx, req, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// decodeInto unmarshals payload into a fresh value and stores it in out
// only when decoding succeeds.
func decodeInto(payload []byte, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &json.InvalidUnmarshalError{Type: reflect.TypeOf(out)}
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(payload, fresh.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

var (
	ErrTransportFailure = errors.New("transport failure")
	ErrDecodingFailed   = errors.New("decoding failed")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrNonHTTPResponse  = errors.New("non-HTTP response")
	ErrStubFailure      = errors.New("stub failure")
)

// NetworkError is the single failure type of a Network. Kind is one of the
// Err* sentinels above; errors.Is matches both Kind and Cause.
type NetworkError struct {
	Kind    error
	Status  int
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("network: %v %d", e.Kind, e.Status)
	case e.Message != "":
		return fmt.Sprintf("network: %v: %s", e.Kind, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("network: %v: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("network: %v", e.Kind)
}

func (e *NetworkError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func TransportFailure(cause error) *NetworkError {
	return &NetworkError{Kind: ErrTransportFailure, Cause: cause}
}

func DecodingFailed(cause error) *NetworkError {
	return &NetworkError{Kind: ErrDecodingFailed, Cause: cause}
}

func InvalidStatus(code int) *NetworkError {
	return &NetworkError{Kind: ErrInvalidStatus, Status: code}
}

func NonHTTPResponse() *NetworkError {
	return &NetworkError{Kind: ErrNonHTTPResponse}
}

func StubFailure(message string) *NetworkError {
	return &NetworkError{Kind: ErrStubFailure, Message: message}
}
