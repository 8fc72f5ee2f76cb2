// Package mapapi implements the client for the map server's one-shot API:
// world discovery and world borders.
//
// Both are reference data fetched once per session. Failures are surfaced
// as ErrUnavailable and are never fatal: a map without borders renders
// without a pan constraint and a missing world list leaves the world
// selector with its default.
package mapapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/quetzalmap/quetzalmap/internal/qmap"
)

// ErrUnavailable signals that the map server could not be reached or did
// not answer with a usable response.
var ErrUnavailable = errors.New("map server unavailable")

// Client provides access to the map server API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a new Client for a server base URL, e.g. "http://localhost:8123".
// When no httpClient (nil) is provided it will use the default client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Worlds returns the ids of the worlds the server has tiles for.
func (c *Client) Worlds(ctx context.Context) ([]string, error) {
	var data struct {
		Worlds []string `json:"worlds"`
	}
	if err := c.getJSON(ctx, "/api/worlds", &data); err != nil {
		return nil, err
	}
	return data.Worlds, nil
}

// WorldBorders returns the world borders keyed by world id. A world without
// a border is simply absent, which means "no constraint".
func (c *Client) WorldBorders(ctx context.Context) (map[string]qmap.WorldBorder, error) {
	var data struct {
		Borders []qmap.WorldBorder `json:"borders"`
	}
	if err := c.getJSON(ctx, "/api/worldborder", &data); err != nil {
		return nil, err
	}
	borders := make(map[string]qmap.WorldBorder, len(data.Borders))
	for _, b := range data.Borders {
		borders[b.World] = b
	}
	return borders, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: %s: %s", ErrUnavailable, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	return nil
}
