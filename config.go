package matgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the serializable scan and wiring configuration.
type Config struct {
	Channels          []ChannelSpec `json:"channels" yaml:"channels"`                                       // Channel matching and wiring table
	Extensions        []string      `json:"extensions,omitempty" yaml:"extensions,omitempty"`               // Texture extension allow-list
	DefaultIdentifier string        `json:"defaultIdentifier,omitempty" yaml:"defaultIdentifier,omitempty"` // Fallback set identifier
	NamePrefix        string        `json:"namePrefix,omitempty" yaml:"namePrefix,omitempty"`               // Material name prefix
	Recursive         bool          `json:"recursive,omitempty" yaml:"recursive,omitempty"`                 // Scan subdirectories
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Channels:          DefaultChannels(),
		Extensions:        DefaultExtensions(),
		DefaultIdentifier: "material",
	}
}

// LoadConfig parses a configuration from YAML bytes. Omitted fields fall
// back to the built-in defaults.
func LoadConfig(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	def := DefaultConfig()
	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
	if c.DefaultIdentifier == "" {
		c.DefaultIdentifier = def.DefaultIdentifier
	}

	return c, nil
}

// LoadConfigFile parses a configuration from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadConfig(b)
}

// SaveFile writes the configuration as YAML.
func (c *Config) SaveFile(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, b, 0o600)
}

// ResolveOptions derives scan options from the configuration.
func (c *Config) ResolveOptions() *ResolveOptions {
	return &ResolveOptions{
		Channels:          c.Channels,
		Extensions:        c.Extensions,
		DefaultIdentifier: c.DefaultIdentifier,
		Recursive:         c.Recursive,
	}
}

// BuildOptions derives build options from the configuration.
func (c *Config) BuildOptions() *BuildOptions {
	return &BuildOptions{
		Channels:   c.Channels,
		NamePrefix: c.NamePrefix,
	}
}

// ValidateOptions derives validation options from the configuration.
func (c *Config) ValidateOptions() *ValidateOptions {
	return &ValidateOptions{
		Channels:   c.Channels,
		Extensions: c.Extensions,
	}
}
