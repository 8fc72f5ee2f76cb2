package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

// MarkerStore maps marker ids to their latest known state. Server-side
// integrations upsert markers individually and remove them by id.
type MarkerStore struct {
	mu      sync.RWMutex
	markers map[string]qmap.Marker
}

func NewMarkerStore() *MarkerStore {
	return &MarkerStore{markers: make(map[string]qmap.Marker)}
}

// Apply folds one delivered event into the store and reports whether the
// event was relevant to markers.
func (s *MarkerStore) Apply(ev qmap.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch m := ev.Payload.(type) {
	case *qmap.Marker:
		s.markers[m.ID] = *m
	case *qmap.MarkerRemoved:
		delete(s.markers, m.ID)
	default:
		return false
	}
	return true
}

// Markers returns the markers in a world, sorted by id. An empty world
// returns every marker.
func (s *MarkerStore) Markers(world string) []qmap.Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mm := make([]qmap.Marker, 0, len(s.markers))
	for _, m := range s.markers {
		if world == "" || m.World == world {
			mm = append(mm, m)
		}
	}
	slices.SortFunc(mm, func(a, b qmap.Marker) int {
		return strings.Compare(a.ID, b.ID)
	})
	return mm
}

// Count returns the number of markers in a world. An empty world counts
// every marker.
func (s *MarkerStore) Count(world string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if world == "" {
		return len(s.markers)
	}
	var n int
	for _, m := range s.markers {
		if m.World == world {
			n++
		}
	}
	return n
}
