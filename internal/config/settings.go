package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/airwav/airwav/internal/platform"
)

// Default values
const (
	DefaultServerURL     = "https://de1.api.radio-browser.info"
	DefaultVolume        = 70
	DefaultVolumeStep    = 5
	DefaultResultLimit   = 50
	DefaultSearchName    = "kexp"
	DefaultUserAgent     = "airwav/1.0"
	DefaultConfigName    = "config.toml"
	DefaultFavoritesName = "favorites.json"
)

// Volume and result limit bounds
const (
	MinVolume      = 0
	MaxVolume      = 100
	MinResultLimit = 1
	MaxResultLimit = 500
)

// Settings manages application configuration
type Settings struct {
	ServerURL   string `toml:"server_url"`
	Volume      int    `toml:"volume"`
	VolumeStep  int    `toml:"volume_step"`
	ResultLimit int    `toml:"result_limit"`
	// DefaultSearch is the station name searched at startup
	DefaultSearch string `toml:"default_search"`
	UserAgent     string `toml:"user_agent"`
	Debug         bool   `toml:"debug"`

	path string
}

// NewSettings returns settings populated with default values
func NewSettings() *Settings {
	return &Settings{
		ServerURL:     DefaultServerURL,
		Volume:        DefaultVolume,
		VolumeStep:    DefaultVolumeStep,
		ResultLimit:   DefaultResultLimit,
		DefaultSearch: DefaultSearchName,
		UserAgent:     DefaultUserAgent,
	}
}

// Load reads settings from the config file under the user config directory,
// falling back to defaults when the file does not exist. Values outside their
// valid range are clamped.
func Load() (*Settings, error) {
	dir, err := platform.ConfigDir()
	if err != nil {
		return NewSettings(), err
	}
	return LoadFrom(filepath.Join(dir, DefaultConfigName))
}

// LoadFrom reads settings from an explicit path
func LoadFrom(path string) (*Settings, error) {
	settings := NewSettings()
	settings.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return NewSettings(), fmt.Errorf("parse config %s: %w", path, err)
	}

	settings.clamp()
	return settings, nil
}

// Save writes the settings back to the file they were loaded from
func (s *Settings) Save() error {
	if s.path == "" {
		return errors.New("settings have no backing file")
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

func (s *Settings) clamp() {
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	if s.UserAgent == "" {
		s.UserAgent = DefaultUserAgent
	}
	if s.Volume < MinVolume {
		s.Volume = MinVolume
	}
	if s.Volume > MaxVolume {
		s.Volume = MaxVolume
	}
	if s.VolumeStep < 1 {
		s.VolumeStep = DefaultVolumeStep
	}
	if s.ResultLimit < MinResultLimit {
		s.ResultLimit = DefaultResultLimit
	}
	if s.ResultLimit > MaxResultLimit {
		s.ResultLimit = MaxResultLimit
	}
}
