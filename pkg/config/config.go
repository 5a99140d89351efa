// Package config loads the per-project settings file.
//
// The file lives at .patchboard-atlas/config.toml:
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[router]
//	inbox = "/srv/router/in"
//	outbox = "/srv/router/out"
//
//	[log]
//	level = "info"
//
// Every key is optional. A missing file yields [Default].
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	atlaserr "github.com/patchboard/atlas/pkg/errors"
)

// FileName is the config file name inside the project directory.
const FileName = "config.toml"

// Config is the decoded settings file.
type Config struct {
	Viewport Viewport `toml:"viewport"`
	Router   Router   `toml:"router"`
	Log      Log      `toml:"log"`
}

// Viewport is the default canvas size for headless renders.
type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Router names the router module's own folders, if any.
type Router struct {
	Inbox  string `toml:"inbox,omitempty"`
	Outbox string `toml:"outbox,omitempty"`
}

// Log selects the default log level.
type Log struct {
	Level string `toml:"level"`
}

var levels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Viewport: Viewport{Width: 800, Height: 600},
		Log:      Log{Level: "info"},
	}
}

// Load reads dir/config.toml over [Default]. Keys absent from the file keep
// their defaults.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, atlaserr.Wrap(atlaserr.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Default(), atlaserr.Wrap(atlaserr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return atlaserr.New(atlaserr.ErrCodeInvalidConfig, "viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if !levels[c.Log.Level] {
		return atlaserr.New(atlaserr.ErrCodeInvalidConfig, "log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	for field, path := range map[string]string{"router.inbox": c.Router.Inbox, "router.outbox": c.Router.Outbox} {
		if path != "" && !filepath.IsAbs(path) {
			return atlaserr.New(atlaserr.ErrCodeInvalidConfig, "%s must be an absolute path", field)
		}
	}
	return nil
}

// Save writes c to dir/config.toml, creating dir if needed.
func Save(dir string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return atlaserr.Wrap(atlaserr.ErrCodeInternal, err, "encode config")
	}
	return os.WriteFile(filepath.Join(dir, FileName), buf.Bytes(), 0o644)
}
