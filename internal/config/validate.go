package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateList(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAPI() error {
	if err := validateHTTPURL("api.base_url", c.API.BaseURL); err != nil {
		return err
	}
	if _, err := language.Parse(c.API.Language); err != nil {
		return fmt.Errorf("api.language %q is not a valid language tag: %w", c.API.Language, err)
	}
	if c.API.Recitation < 0 {
		return errors.New("api.recitation must be zero or a positive recitation id")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if err := validateHTTPURL("audio.base_url", c.Audio.BaseURL); err != nil {
		return err
	}
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return fmt.Errorf("audio.sample_rate must be between 8000 and 192000, got %d", c.Audio.SampleRate)
	}
	return nil
}

func (c *Config) validateList() error {
	if c.List.PageSize > 50 {
		return fmt.Errorf("list.page_size must be at most 50, got %d", c.List.PageSize)
	}
	if c.List.PrefetchThreshold < 0 || c.List.PrefetchThreshold > 1 {
		return errors.New("list.prefetch_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	for component, level := range c.Logging.ComponentLevels {
		if !validLevel(level) {
			return fmt.Errorf("logging.component_levels.%s %q is not one of debug, info, warn, error", component, level)
		}
	}
	return nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func validateHTTPURL(field, raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http or https url, got %q", field, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, raw)
	}
	return nil
}
