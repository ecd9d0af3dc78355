// Package config loads settings for the gemini command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/gemini"
)

// Config holds command settings. Zero fields are replaced by defaults in Load.
type Config struct {
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Stream    bool          `yaml:"stream"`
	WordDelay time.Duration `yaml:"word_delay"`
	Verbose   bool          `yaml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Endpoint:  gemini.BaseURL + gemini.APIEndpoint,
		Timeout:   gemini.DefaultTimeout,
		UserAgent: gemini.DefaultUserAgent,
		WordDelay: 50 * time.Millisecond,
	}
}

// Load reads path as YAML on top of Default. An empty path, or a path that does
// not exist, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.fill()
	return cfg, nil
}

// fill restores defaults for fields a config file blanked out.
func (c *Config) fill() {
	d := Default()
	if c.Endpoint == "" {
		c.Endpoint = d.Endpoint
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.WordDelay < 0 {
		c.WordDelay = 0
	}
}

// ClientOptions converts the settings into gemini client options.
func (c Config) ClientOptions() []gemini.ClientOption {
	tr := gemini.NewHTTPTransport(c.Timeout)
	tr.UserAgent = c.UserAgent
	return []gemini.ClientOption{
		gemini.WithTransport(tr),
		gemini.WithEndpoint(c.Endpoint),
		gemini.WithTimeout(c.Timeout),
	}
}
