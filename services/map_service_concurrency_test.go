package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mapify-server/models"
	"mapify-server/network"
)

// alternatingNetwork answers with all example locations and the first three
// of them on alternate calls.
type alternatingNetwork struct {
	calls atomic.Int64
}

func (a *alternatingNetwork) Send(_ context.Context, _ network.Request, out any) error {
	locations := models.ExampleLocations()
	if a.calls.Add(1)%2 == 0 {
		locations = locations[:3]
	}
	data, err := json.Marshal(models.ToFeed(locations))
	if err != nil {
		return network.DecodingFailed(err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return network.DecodingFailed(err)
	}
	return nil
}

func checkView(v ViewState) string {
	if v.SelectedFilterCount == 0 {
		if len(v.VisibleLocations) != v.LocationCount {
			return "visible locations out of step with all locations"
		}
		return ""
	}
	selected := make(map[models.LocationType]bool)
	for _, t := range v.SelectedFilters {
		selected[t] = true
	}
	for _, loc := range v.VisibleLocations {
		if !selected[loc.Type] {
			return "visible location of an unselected type: " + loc.Name
		}
	}
	return ""
}

func TestListenerCanReadStateDuringMutation(t *testing.T) {
	s := newLoadedService(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var seen []int
	s.Subscribe(func(ViewState) {
		once.Do(func() {
			close(entered)
			<-release
		})
		seen = append(seen, len(s.VisibleLocations()))
	})

	first := make(chan struct{})
	go func() {
		s.ToggleFilter(models.Cafe)
		close(first)
	}()
	<-entered

	second := make(chan struct{})
	go func() {
		s.ToggleFilter(models.Bar)
		close(second)
	}()

	read := make(chan ViewState, 1)
	go func() { read <- s.View() }()
	select {
	case v := <-read:
		if v.SelectedFilterCount != 1 {
			t.Errorf("reader saw %d filters while the first listener ran, want 1", v.SelectedFilterCount)
		}
	case <-time.After(time.Second):
		t.Fatal("View blocked while a listener was running")
	}

	close(release)
	for _, done := range []chan struct{}{first, second} {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("mutation never finished while a listener read state")
		}
	}

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("listener saw visible counts %v, want [1 2]", seen)
	}
}

func TestConcurrentRefreshAndReadsStayConsistent(t *testing.T) {
	s := NewMapService(&alternatingNetwork{}, testRequest)

	var listenerErr atomic.Value
	s.Subscribe(func(v ViewState) {
		if msg := checkView(v); msg != "" {
			listenerErr.Store("snapshot: " + msg)
		}
		if msg := checkView(s.View()); msg != "" {
			listenerErr.Store("listener read: " + msg)
		}
	})

	stop := make(chan struct{})
	var writers, readers sync.WaitGroup

	writers.Add(2)
	go func() {
		defer writers.Done()
		for i := 0; i < 200; i++ {
			if err := s.Refresh(context.Background()); err != nil {
				t.Errorf("Refresh: %v", err)
				return
			}
		}
	}()
	go func() {
		defer writers.Done()
		for i := 0; i < 200; i++ {
			s.ToggleFilter(models.Cafe)
			s.ToggleFilter(models.Park)
			if i%3 == 0 {
				s.ClearFilters()
			}
		}
	}()

	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if msg := checkView(s.View()); msg != "" {
					t.Errorf("reader: %s", msg)
					return
				}
				s.VisibleLocations()
				s.LocationsByType()
			}
		}()
	}

	writersDone := make(chan struct{})
	go func() {
		writers.Wait()
		close(writersDone)
	}()
	select {
	case <-writersDone:
	case <-time.After(10 * time.Second):
		t.Fatal("writers did not finish; the service is deadlocked")
	}
	close(stop)
	readers.Wait()

	if msg, ok := listenerErr.Load().(string); ok {
		t.Error(msg)
	}
}
