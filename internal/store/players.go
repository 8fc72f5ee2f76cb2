// Package store contains the entity stores fed by the event stream.
//
// Each store folds delivered events into the latest known state of one
// entity collection. Stores never re-scan the event log: one event is
// applied exactly once, in delivery order. Read views filter by world at
// call time and always return a committed snapshot, never an intermediate
// state.
package store

import (
	"slices"
	"strings"
	"sync"

	"github.com/ErikKalkoken/go-set"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

// PlayerStore maps player ids to their latest known state.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]qmap.Player
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{players: make(map[string]qmap.Player)}
}

// Apply folds one delivered event into the store and reports whether the
// event was relevant to players. Later events always win for the same id.
func (s *PlayerStore) Apply(ev qmap.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch p := ev.Payload.(type) {
	case *qmap.PlayerList:
		// full resync from the server, replaces everything known so far
		players := make(map[string]qmap.Player, len(p.Players))
		for _, pl := range p.Players {
			players[pl.ID] = pl
		}
		s.players = players
	case *qmap.Player:
		s.players[p.ID] = *p
	case *qmap.PlayerRef:
		// removing an unknown id is a no-op
		delete(s.players, p.ID)
	default:
		return false
	}
	return true
}

// Players returns the players in a world, sorted by display name.
// An empty world returns every player.
func (s *PlayerStore) Players(world string) []qmap.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pp := make([]qmap.Player, 0, len(s.players))
	for _, p := range s.players {
		if world == "" || p.World == world {
			pp = append(pp, p)
		}
	}
	slices.SortFunc(pp, func(a, b qmap.Player) int {
		return strings.Compare(a.DisplayName, b.DisplayName)
	})
	return pp
}

// Count returns the number of players in a world without copying them.
// An empty world counts every player.
func (s *PlayerStore) Count(world string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if world == "" {
		return len(s.players)
	}
	var n int
	for _, p := range s.players {
		if p.World == world {
			n++
		}
	}
	return n
}

// Worlds returns the set of worlds with at least one player.
func (s *PlayerStore) Worlds() set.Set[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	worlds := set.Of[string]()
	for _, p := range s.players {
		worlds.Add(p.World)
	}
	return worlds
}
