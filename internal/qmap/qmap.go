// Package qmap contains the shared domain types of the QuetzalMap client.
//
// The JSON tags follow the wire format of the QuetzalMap backend verbatim,
// e.g. a player's stable identity is transmitted as "uuid" and the storm
// category as "type".
package qmap

import "fmt"

// StormPhase is the lifecycle phase of a storm.
type StormPhase string

const (
	PhaseForming     StormPhase = "FORMING"
	PhasePeak        StormPhase = "PEAK"
	PhaseDissipating StormPhase = "DISSIPATING"
)

// StormCategory classifies a storm by duration and danger.
type StormCategory string

const (
	CategoryShortWeak     StormCategory = "SHORT_WEAK"
	CategoryMedium        StormCategory = "MEDIUM"
	CategoryLongDangerous StormCategory = "LONG_DANGEROUS"
)

// Player is the last known state of an online player.
type Player struct {
	ID          string  `json:"uuid"`
	DisplayName string  `json:"name"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	HeadingDeg  float64 `json:"yaw"`
	World       string  `json:"world"`
}

// Storm is the last known state of a traveling storm.
//
// A storm has no explicit removal event. It is gone when it no longer
// appears in the latest storm list.
type Storm struct {
	ID               string        `json:"id"`
	X                float64       `json:"x"`
	Z                float64       `json:"z"`
	TargetX          float64       `json:"targetX"`
	TargetZ          float64       `json:"targetZ"`
	Radius           float64       `json:"radius"`
	BaseRadius       float64       `json:"baseRadius"`
	RadiusMultiplier float64       `json:"radiusMultiplier"`
	Phase            StormPhase    `json:"phase"`
	PhaseSymbol      string        `json:"phaseSymbol"`
	PhaseMultiplier  float64       `json:"phaseMultiplier"`
	Category         StormCategory `json:"type"`
	DamagePerSecond  float64       `json:"damage"`
	Speed            float64       `json:"speed"`
	RemainingSeconds int           `json:"remainingSeconds"`
	World            string        `json:"world"`
}

// Marker is a point of interest placed on the map by a server-side
// integration, e.g. a town or nation capital.
type Marker struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Name  string  `json:"name"`
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// WorldBorder describes the square playable region of a world in block space.
type WorldBorder struct {
	World   string  `json:"world"`
	CenterX float64 `json:"centerX"`
	CenterZ float64 `json:"centerZ"`
	Size    float64 `json:"size"`
}

// TileAddress identifies one 512x512 tile at the canonical zoom level.
type TileAddress struct {
	World string
	X     int
	Z     int
}

// FileName returns the tile's file name, e.g. "0_0.png".
func (a TileAddress) FileName() string {
	return fmt.Sprintf("%d_%d.png", a.X, a.Z)
}

func (a TileAddress) String() string {
	return fmt.Sprintf("TileAddress{world=%s, x=%d, z=%d}", a.World, a.X, a.Z)
}
