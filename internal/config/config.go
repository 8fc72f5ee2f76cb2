// Package config loads the app configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
)

// Defaults used for every value missing from the config file.
const (
	DefaultServerURL      = "http://localhost:8123"
	DefaultWorld          = "world"
	DefaultSummarySeconds = 5
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// Config holds the app configuration.
type Config struct {
	// ServerURL is the base URL of the QuetzalMap server.
	ServerURL string `yaml:"server_url"`
	// World is the world shown after startup.
	World string `yaml:"world"`
	// SummarySeconds is the interval between monitor summaries.
	SummarySeconds int `yaml:"summary_seconds"`
	// ViewportWidth and ViewportHeight describe the assumed viewport for
	// derived values like the prefetch radius.
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`
}

// EventsURL returns the URL of the server's event stream.
func (c Config) EventsURL() string {
	return c.ServerURL + "/events"
}

// Load reads the configuration from a YAML file and fills missing values
// with defaults. A missing file is not an error and returns the defaults.
func Load(path string) (Config, error) {
	c := Config{
		ServerURL:      DefaultServerURL,
		World:          DefaultWorld,
		SummarySeconds: DefaultSummarySeconds,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
	}
	dat, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(dat, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.World == "" {
		c.World = DefaultWorld
	}
	if c.SummarySeconds <= 0 {
		c.SummarySeconds = DefaultSummarySeconds
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = DefaultViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = DefaultViewportHeight
	}
	return c, nil
}
