// Package testutil contains factories for creating test objects.
package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/icrowley/fake"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

var phases = []qmap.StormPhase{qmap.PhaseForming, qmap.PhasePeak, qmap.PhaseDissipating}
var categories = []qmap.StormCategory{qmap.CategoryShortWeak, qmap.CategoryMedium, qmap.CategoryLongDangerous}

// RandomUUID returns a random id in the canonical UUID text form.
func RandomUUID() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = byte(rand.IntN(256))
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// CreatePlayer returns a new random player. Fields set in args are kept.
func CreatePlayer(args ...qmap.Player) qmap.Player {
	var p qmap.Player
	if len(args) > 0 {
		p = args[0]
	}
	if p.ID == "" {
		p.ID = RandomUUID()
	}
	if p.DisplayName == "" {
		p.DisplayName = fake.UserName()
	}
	if p.World == "" {
		p.World = "world"
	}
	if p.X == 0 && p.Z == 0 {
		p.X = float64(rand.IntN(10_000) - 5_000)
		p.Z = float64(rand.IntN(10_000) - 5_000)
		p.Y = float64(rand.IntN(256))
	}
	return p
}

// CreateStorm returns a new random storm. Fields set in args are kept.
func CreateStorm(args ...qmap.Storm) qmap.Storm {
	var s qmap.Storm
	if len(args) > 0 {
		s = args[0]
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("storm_%d", rand.IntN(1_000_000))
	}
	if s.World == "" {
		s.World = "world"
	}
	if s.Phase == "" {
		s.Phase = phases[rand.IntN(len(phases))]
	}
	if s.Category == "" {
		s.Category = categories[rand.IntN(len(categories))]
	}
	if s.Radius == 0 {
		s.BaseRadius = float64(50 + rand.IntN(200))
		s.RadiusMultiplier = 0.5 + rand.Float64()/2
		s.Radius = s.BaseRadius * s.RadiusMultiplier
	}
	if s.RemainingSeconds == 0 {
		s.RemainingSeconds = rand.IntN(600)
	}
	return s
}

// CreateMarker returns a new random marker. Fields set in args are kept.
func CreateMarker(args ...qmap.Marker) qmap.Marker {
	var m qmap.Marker
	if len(args) > 0 {
		m = args[0]
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("town_%d", rand.IntN(1_000_000))
	}
	if m.Type == "" {
		m.Type = "town"
	}
	if m.Name == "" {
		m.Name = fake.City()
	}
	if m.World == "" {
		m.World = "world"
	}
	return m
}
