package network

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"mapify-server/models"
)

// Stub serves canned payloads for known requests instead of doing I/O.
type Stub struct {
	mu       sync.RWMutex
	fixtures map[Request][]byte
}

func NewStub() *Stub {
	return &Stub{fixtures: make(map[Request][]byte)}
}

// NewExampleStub answers req with the encoded example locations.
func NewExampleStub(req Request) (*Stub, error) {
	data, err := json.Marshal(models.ToFeed(models.ExampleLocations()))
	if err != nil {
		return nil, fmt.Errorf("encode example locations: %w", err)
	}
	s := NewStub()
	s.Register(req, data)
	return s, nil
}

// NewFileStub answers req with the contents of the fixture file at path.
func NewFileStub(req Request, path string) (*Stub, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	s := NewStub()
	s.Register(req, data)
	return s, nil
}

func (s *Stub) Register(req Request, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[req] = payload
}

var _ Network = (*Stub)(nil)

func (s *Stub) Send(_ context.Context, req Request, out any) error {
	s.mu.RLock()
	payload, ok := s.fixtures[req]
	s.mu.RUnlock()
	if !ok {
		return StubFailure("invalid request for network stub")
	}
	if err := decodeInto(payload, out); err != nil {
		return StubFailure("failed to decode stub data")
	}
	return nil
}
