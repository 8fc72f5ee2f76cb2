package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quetzalmap/quetzalmap/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("can load a complete config file", func(t *testing.T) {
		// given
		p := filepath.Join(t.TempDir(), "config.yaml")
		dat := []byte("server_url: http://map.example.com:8123\nworld: world_nether\nsummary_seconds: 30\nviewport_width: 1280\nviewport_height: 720\n")
		require.NoError(t, os.WriteFile(p, dat, 0644))
		// when
		c, err := config.Load(p)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "http://map.example.com:8123", c.ServerURL)
			assert.Equal(t, "world_nether", c.World)
			assert.Equal(t, 30, c.SummarySeconds)
			assert.Equal(t, 1280, c.ViewportWidth)
			assert.Equal(t, 720, c.ViewportHeight)
		}
	})
	t.Run("should return defaults when the file does not exist", func(t *testing.T) {
		// when
		c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, config.DefaultServerURL, c.ServerURL)
			assert.Equal(t, config.DefaultWorld, c.World)
			assert.Equal(t, config.DefaultSummarySeconds, c.SummarySeconds)
		}
	})
	t.Run("should fill missing values with defaults", func(t *testing.T) {
		// given
		p := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(p, []byte("world: world_the_end\n"), 0644))
		// when
		c, err := config.Load(p)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "world_the_end", c.World)
			assert.Equal(t, config.DefaultServerURL, c.ServerURL)
			assert.Equal(t, config.DefaultViewportWidth, c.ViewportWidth)
		}
	})
	t.Run("should report a malformed file", func(t *testing.T) {
		// given
		p := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(p, []byte(":\n\t-"), 0644))
		// when
		_, err := config.Load(p)
		// then
		assert.Error(t, err)
	})
	t.Run("can derive the events URL", func(t *testing.T) {
		c := config.Config{ServerURL: "http://qmap.test"}
		assert.Equal(t, "http://qmap.test/events", c.EventsURL())
	})
}
