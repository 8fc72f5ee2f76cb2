package qmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

func TestDecodeEvent(t *testing.T) {
	t.Run("should decode a player_moved event with wire field names", func(t *testing.T) {
		// given
		data := []byte(`{"uuid":"123e4567","name":"alice","x":10.5,"y":64,"z":-20.25,"yaw":180,"world":"world"}`)
		// when
		ev, known, err := qmap.DecodeEvent(qmap.EventPlayerMoved, data)
		// then
		require.NoError(t, err)
		assert.True(t, known)
		p, ok := ev.Payload.(*qmap.Player)
		require.True(t, ok)
		assert.Equal(t, "123e4567", p.ID)
		assert.Equal(t, "alice", p.DisplayName)
		assert.Equal(t, 180.0, p.HeadingDeg)
		assert.Equal(t, -20.25, p.Z)
	})
	t.Run("should decode a storm_update event including category and damage", func(t *testing.T) {
		// given
		data := []byte(`{"storms":[{"id":"s1","x":1,"z":2,"phase":"FORMING","phaseSymbol":"~","phaseMultiplier":0.5,"type":"LONG_DANGEROUS","damage":7.5,"remainingSeconds":90,"world":"world"}]}`)
		// when
		ev, known, err := qmap.DecodeEvent(qmap.EventStormUpdate, data)
		// then
		require.NoError(t, err)
		assert.True(t, known)
		list, ok := ev.Payload.(*qmap.StormList)
		require.True(t, ok)
		require.Len(t, list.Storms, 1)
		s := list.Storms[0]
		assert.Equal(t, qmap.CategoryLongDangerous, s.Category)
		assert.Equal(t, qmap.PhaseForming, s.Phase)
		assert.Equal(t, 7.5, s.DamagePerSecond)
		assert.Equal(t, 90, s.RemainingSeconds)
	})
	t.Run("should decode a tile_updated event", func(t *testing.T) {
		// given
		data := []byte(`{"world":"world_nether","zoom":0,"x":-3,"z":7}`)
		// when
		ev, known, err := qmap.DecodeEvent(qmap.EventTileUpdated, data)
		// then
		require.NoError(t, err)
		assert.True(t, known)
		tu, ok := ev.Payload.(*qmap.TileUpdate)
		require.True(t, ok)
		assert.Equal(t, -3, tu.X)
		assert.Equal(t, 7, tu.Z)
	})
	t.Run("should report an unknown kind without error", func(t *testing.T) {
		// when
		_, known, err := qmap.DecodeEvent("brand_new_kind", []byte(`{}`))
		// then
		assert.NoError(t, err)
		assert.False(t, known)
	})
	t.Run("should return an error for a malformed payload", func(t *testing.T) {
		for _, kind := range []qmap.EventKind{
			qmap.EventConnected,
			qmap.EventPlayerMoved,
			qmap.EventPlayerList,
			qmap.EventStormUpdate,
			qmap.EventMarkerUpdated,
		} {
			// when
			_, known, err := qmap.DecodeEvent(kind, []byte(`{"broken`))
			// then
			assert.True(t, known, "kind %s", kind)
			assert.Error(t, err, "kind %s", kind)
		}
	})
}

func TestTileAddress(t *testing.T) {
	a := qmap.TileAddress{World: "world", X: -1, Z: 2}
	assert.Equal(t, "-1_2.png", a.FileName())
	assert.Equal(t, "TileAddress{world=world, x=-1, z=2}", a.String())
}
