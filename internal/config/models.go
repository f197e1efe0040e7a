package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/muurk/fritz-profiles/internal/fritzbox"
)

// CurrentVersion is the config file format version
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version int                `yaml:"version"`
	Router  RouterConfig       `yaml:"router"`
	Presets map[string]*Preset `yaml:"presets,omitempty"` // Keyed by preset name

	// Password is only ever read from the environment or flags
	Password string `yaml:"-"`
}

// RouterConfig holds the connection settings for the router.
// Note: the password is NEVER stored in the config file.
type RouterConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Timeout  int    `yaml:"timeout"` // Per-request timeout in seconds
}

// Preset is a named set of device to profile assignments,
// e.g. "bedtime" moving the kids' devices to a restricted profile.
type Preset struct {
	Description string                `yaml:"description,omitempty"`
	Assignments []fritzbox.Assignment `yaml:"assignments"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Router: RouterConfig{
			URL:      fritzbox.DefaultURL,
			Username: "",
			Timeout:  int(fritzbox.DefaultTimeout / time.Second),
		},
		Presets: make(map[string]*Preset),
	}
}

// RequestTimeout returns the router timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Router.Timeout) * time.Second
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if err := fritzbox.ValidateBaseURL(c.Router.URL); err != nil {
		return fmt.Errorf("router.url: %w", err)
	}
	if c.Router.Timeout <= 0 {
		return fmt.Errorf("router.timeout must be positive, got %d", c.Router.Timeout)
	}
	for name, p := range c.Presets {
		if p == nil || len(p.Assignments) == 0 {
			return fmt.Errorf("preset %q has no assignments", name)
		}
		for i, a := range p.Assignments {
			if a.DeviceKey == "" || a.ProfileKey == "" {
				return fmt.Errorf("preset %q assignment %d: device and profile are required", name, i+1)
			}
		}
	}
	return nil
}

// Preset returns the named preset
func (c *Config) Preset(name string) (*Preset, error) {
	p, ok := c.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (known: %v)", name, c.PresetNames())
	}
	return p, nil
}

// PresetNames returns the preset names in sorted order
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetPreset adds or replaces a preset.
func (c *Config) SetPreset(name, description string, assignments []fritzbox.Assignment) {
	if c.Presets == nil {
		c.Presets = make(map[string]*Preset)
	}
	c.Presets[name] = &Preset{
		Description: description,
		Assignments: assignments,
	}
}
