package qmap

import (
	"encoding/json"
	"fmt"
)

// EventKind is the name of a server-sent event.
type EventKind string

// The fixed event vocabulary of the backend. Kinds not listed here are
// ignored by the client for forward compatibility.
const (
	EventConnected        EventKind = "connected"
	EventTileUpdated      EventKind = "tile_updated"
	EventMarkerUpdated    EventKind = "marker_updated"
	EventMarkerRemoved    EventKind = "marker_removed"
	EventPlayerMoved      EventKind = "player_moved"
	EventPlayerList       EventKind = "player_list"
	EventPlayerJoin       EventKind = "player_join"
	EventPlayerDisconnect EventKind = "player_disconnect"
	EventStormUpdate      EventKind = "storm_update"
)

// Event is one delivered event with its decoded payload.
//
// Payload holds the concrete type for the kind:
// Connected, TileUpdate, Marker, MarkerRemoved, Player (moved and join),
// PlayerList, PlayerRef (disconnect) or StormList.
type Event struct {
	Kind    EventKind
	Payload any
}

// Connected is the payload of a "connected" event.
type Connected struct {
	ID int `json:"id"`
}

// TileUpdate announces that the server re-rendered a tile.
type TileUpdate struct {
	World string `json:"world"`
	Zoom  int    `json:"zoom"`
	X     int    `json:"x"`
	Z     int    `json:"z"`
}

// MarkerRemoved is the payload of a "marker_removed" event.
type MarkerRemoved struct {
	ID string `json:"id"`
}

// PlayerList is a full resync of all online players.
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerRef identifies a player without position data.
type PlayerRef struct {
	ID          string `json:"uuid"`
	DisplayName string `json:"name"`
}

// StormList is the complete set of currently active storms across all worlds.
type StormList struct {
	Storms []Storm `json:"storms"`
}

// DecodeEvent parses the JSON payload of a named server-sent event into a
// typed Event.
//
// An unknown kind returns ok == false and no error. A payload that fails to
// parse returns an error; such events must be dropped by the caller.
func DecodeEvent(kind EventKind, data []byte) (Event, bool, error) {
	var payload any
	switch kind {
	case EventConnected:
		payload = &Connected{}
	case EventTileUpdated:
		payload = &TileUpdate{}
	case EventMarkerUpdated:
		payload = &Marker{}
	case EventMarkerRemoved:
		payload = &MarkerRemoved{}
	case EventPlayerMoved, EventPlayerJoin:
		payload = &Player{}
	case EventPlayerList:
		payload = &PlayerList{}
	case EventPlayerDisconnect:
		payload = &PlayerRef{}
	case EventStormUpdate:
		payload = &StormList{}
	default:
		return Event{}, false, nil
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return Event{}, true, fmt.Errorf("decode %s event: %w", kind, err)
	}
	return Event{Kind: kind, Payload: payload}, true, nil
}
