// Package tiles provides cached access to the map tile images of the
// QuetzalMap server.
//
// Tiles only exist on the server at the canonical zoom. The service fetches
// them at that zoom, caches the raw bytes until the server announces a
// re-render, and produces client-side rescales for every other zoom level.
package tiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/quetzalmap/quetzalmap/internal/coord"
	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

var (
	// ErrNotRendered means the server has no image for the tile yet.
	ErrNotRendered = errors.New("tile not rendered yet")
	ErrHTTPError   = errors.New("http error")
	ErrZoomRange   = errors.New("zoom level out of range")
)

// Tile request rate limit towards the server. Panning at low zoom fans out
// into many tile requests; the limiter keeps a burst from flooding the
// server while the prefetch radius cap bounds the total.
const (
	requestsPerSecond = 32
	requestBurst      = 64
)

// CacheService defines a cache service for tile payloads.
type CacheService interface {
	Get(string) ([]byte, bool)
	Set(string, []byte, time.Duration)
	Delete(string)
}

// Service provides cached access to map tiles.
type Service struct {
	baseURL    string
	cache      CacheService
	httpClient *http.Client
	limiter    *rate.Limiter
	sfg        *singleflight.Group
}

// New returns a new tile service for a server base URL.
// When no httpClient (nil) is provided it will use the default client.
func New(baseURL string, cache CacheService, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	s := &Service{
		baseURL:    baseURL,
		cache:      cache,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(requestsPerSecond, requestBurst),
		sfg:        new(singleflight.Group),
	}
	return s
}

// URL returns the absolute URL of a tile at the canonical zoom.
func (s *Service) URL(a qmap.TileAddress) string {
	return s.baseURL + "/" + coord.TilePath(a)
}

// Tile returns the tile image at the canonical zoom.
// It returns it from cache or - if not found - will try to fetch it from
// the server. Concurrent requests for the same tile are collapsed into one.
func (s *Service) Tile(ctx context.Context, a qmap.TileAddress) (image.Image, error) {
	dat, err := s.tileBytes(ctx, a)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("decode tile %s: %w", a, err)
	}
	return img, nil
}

// TileScaled returns the tile image rescaled for a zoom level. Tiles are
// pixel art, so the rescale keeps hard edges instead of smoothing them.
func (s *Service) TileScaled(ctx context.Context, a qmap.TileAddress, zoom int) (image.Image, error) {
	if zoom < coord.MinZoom || zoom > coord.MaxZoom {
		return nil, fmt.Errorf("%w: %d", ErrZoomRange, zoom)
	}
	img, err := s.Tile(ctx, a)
	if err != nil {
		return nil, err
	}
	if zoom == coord.CanonicalZoom {
		return img, nil
	}
	factor := math.Pow(2, float64(zoom))
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	return transform.Resize(img, w, h, transform.NearestNeighbor), nil
}

// HandleEvent evicts a tile from the cache when the server announces that
// it re-rendered it. Events of other kinds are ignored.
func (s *Service) HandleEvent(ev qmap.Event) {
	tu, ok := ev.Payload.(*qmap.TileUpdate)
	if !ok {
		return
	}
	a := qmap.TileAddress{World: tu.World, X: tu.X, Z: tu.Z}
	s.cache.Delete(cacheKey(a))
}

func (s *Service) tileBytes(ctx context.Context, a qmap.TileAddress) ([]byte, error) {
	key := cacheKey(a)
	if dat, ok := s.cache.Get(key); ok {
		return dat, nil
	}
	x, err, _ := s.sfg.Do(key, func() (any, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		dat, err := s.fetch(ctx, a)
		if err != nil {
			return nil, err
		}
		// cached until the server announces a re-render
		s.cache.Set(key, dat, 0)
		return dat, nil
	})
	if err != nil {
		return nil, err
	}
	return x.([]byte), nil
}

func (s *Service) fetch(ctx context.Context, a qmap.TileAddress) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(a), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotRendered
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s: %s", ErrHTTPError, a, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func cacheKey(a qmap.TileAddress) string {
	return fmt.Sprintf("tile-%s-%d_%d", a.World, a.X, a.Z)
}
