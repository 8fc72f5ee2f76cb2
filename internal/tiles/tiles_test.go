package tiles_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
	"github.com/quetzalmap/quetzalmap/internal/tiles"
)

type cache map[string][]byte

func newCache() cache {
	return make(cache)
}

func (c cache) Get(k string) ([]byte, bool) {
	v, ok := c[k]
	return v, ok
}

func (c cache) Set(k string, v []byte, d time.Duration) {
	c[k] = v
}

func (c cache) Delete(k string) {
	delete(c, k)
}

// makePNG returns the encoded bytes of a solid square test image.
func makePNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.RGBA{R: 50, G: 150, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTileFetching(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	ctx := context.Background()
	addr := qmap.TileAddress{World: "world", X: -1, Z: 2}

	t.Run("can fetch and decode a tile", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/-1_2.png",
			httpmock.NewBytesResponder(200, makePNG(t, 8)))
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		img, err := s.Tile(ctx, addr)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, 8, img.Bounds().Dx())
		}
	})
	t.Run("should serve a repeated request from cache", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/-1_2.png",
			httpmock.NewBytesResponder(200, makePNG(t, 8)))
		s := tiles.New("http://qmap.test", newCache(), nil)
		_, err := s.Tile(ctx, addr)
		require.NoError(t, err)
		// when
		_, err = s.Tile(ctx, addr)
		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, httpmock.GetTotalCallCount())
	})
	t.Run("should refetch after a tile update evicted the tile", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/-1_2.png",
			httpmock.NewBytesResponder(200, makePNG(t, 8)))
		s := tiles.New("http://qmap.test", newCache(), nil)
		_, err := s.Tile(ctx, addr)
		require.NoError(t, err)
		// when
		s.HandleEvent(qmap.Event{
			Kind:    qmap.EventTileUpdated,
			Payload: &qmap.TileUpdate{World: "world", Zoom: 0, X: -1, Z: 2},
		})
		_, err = s.Tile(ctx, addr)
		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, httpmock.GetTotalCallCount())
	})
	t.Run("should report a missing tile as not rendered", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/-1_2.png",
			httpmock.NewStringResponder(404, "not found"))
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		_, err := s.Tile(ctx, addr)
		// then
		assert.ErrorIs(t, err, tiles.ErrNotRendered)
	})
	t.Run("should report a server error", func(t *testing.T) {
		// given
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/-1_2.png",
			httpmock.NewStringResponder(500, "boom"))
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		_, err := s.Tile(ctx, addr)
		// then
		assert.ErrorIs(t, err, tiles.ErrHTTPError)
	})
}

func TestTileScaled(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	ctx := context.Background()
	addr := qmap.TileAddress{World: "world", X: 0, Z: 0}

	register := func(t *testing.T) {
		httpmock.Reset()
		httpmock.RegisterResponder(
			"GET",
			"http://qmap.test/tiles/world/0/0_0.png",
			httpmock.NewBytesResponder(200, makePNG(t, 8)))
	}
	t.Run("should return the native image at the canonical zoom", func(t *testing.T) {
		// given
		register(t)
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		img, err := s.TileScaled(ctx, addr, 0)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, 8, img.Bounds().Dx())
		}
	})
	t.Run("should double the size per zoom step in", func(t *testing.T) {
		// given
		register(t)
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		img, err := s.TileScaled(ctx, addr, 2)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, 32, img.Bounds().Dx())
			assert.Equal(t, 32, img.Bounds().Dy())
		}
	})
	t.Run("should halve the size per zoom step out", func(t *testing.T) {
		// given
		register(t)
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		img, err := s.TileScaled(ctx, addr, -2)
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, 2, img.Bounds().Dx())
		}
	})
	t.Run("should reject a zoom outside the supported range", func(t *testing.T) {
		// given
		register(t)
		s := tiles.New("http://qmap.test", newCache(), nil)
		// when
		_, err := s.TileScaled(ctx, addr, 4)
		// then
		assert.ErrorIs(t, err, tiles.ErrZoomRange)
	})
}
