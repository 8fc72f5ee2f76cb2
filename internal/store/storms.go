package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/ErikKalkoken/go-set"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

// StormStore maps storm ids to their latest known state.
//
// The backend broadcasts the complete set of active storms in every
// storm_update, so each event replaces the whole mapping. A storm missing
// from the latest event has ended and is dropped without any explicit
// removal signal.
type StormStore struct {
	mu     sync.RWMutex
	storms map[string]qmap.Storm
}

func NewStormStore() *StormStore {
	return &StormStore{storms: make(map[string]qmap.Storm)}
}

// Apply folds one delivered event into the store and reports whether the
// event was relevant to storms.
func (s *StormStore) Apply(ev qmap.Event) bool {
	list, ok := ev.Payload.(*qmap.StormList)
	if !ok {
		return false
	}
	storms := make(map[string]qmap.Storm, len(list.Storms))
	for _, st := range list.Storms {
		storms[st.ID] = st
	}
	s.mu.Lock()
	s.storms = storms
	s.mu.Unlock()
	return true
}

// Storms returns the storms in a world, sorted by id. An empty world
// returns every storm.
func (s *StormStore) Storms(world string) []qmap.Storm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ss := make([]qmap.Storm, 0, len(s.storms))
	for _, st := range s.storms {
		if world == "" || st.World == world {
			ss = append(ss, st)
		}
	}
	slices.SortFunc(ss, func(a, b qmap.Storm) int {
		return strings.Compare(a.ID, b.ID)
	})
	return ss
}

// Count returns the number of storms in a world. An empty world counts
// every storm.
func (s *StormStore) Count(world string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if world == "" {
		return len(s.storms)
	}
	var n int
	for _, st := range s.storms {
		if st.World == world {
			n++
		}
	}
	return n
}

// Worlds returns the set of worlds with at least one active storm.
func (s *StormStore) Worlds() set.Set[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	worlds := set.Of[string]()
	for _, st := range s.storms {
		worlds.Add(st.World)
	}
	return worlds
}
