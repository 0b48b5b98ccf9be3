package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"recite/internal/audio"
	"recite/internal/config"
	"recite/internal/history"
	"recite/internal/logging"
	"recite/internal/playback"
	"recite/internal/services/quran"
)

// newAudioEngine builds the speaker-backed engine. Tests replace it.
var newAudioEngine = func(cfg *config.Config, logger *slog.Logger) playback.Engine {
	return audio.NewEngine(audio.Options{
		SampleRate:       cfg.Audio.SampleRate,
		Buffer:           time.Duration(cfg.Audio.BufferMillis) * time.Millisecond,
		MaxDownloadBytes: int64(cfg.Audio.MaxDownloadMiB) << 20,
		Timeout:          cfg.AudioTimeout(),
		Logger:           logger,
	})
}

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// componentLogger returns the base logger with the component's configured
// level applied. The receiving package adds its own component attribute.
func (c *commandContext) componentLogger(component string) (*slog.Logger, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return logging.ApplyComponentLevel(logger, component, c.config.Logging.ComponentLevels), nil
}

func (c *commandContext) quranClient() (*quran.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.componentLogger("quran")
	if err != nil {
		return nil, err
	}
	return quran.NewClient(quran.Config{
		BaseURL:        cfg.API.BaseURL,
		Language:       cfg.API.Language,
		Fields:         cfg.API.Fields,
		Recitation:     cfg.API.Recitation,
		Words:          cfg.API.Words,
		TimeoutSeconds: cfg.API.TimeoutSeconds,
	}, quran.WithLogger(logger)), nil
}

func (c *commandContext) audioEngine() (playback.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.componentLogger("audio")
	if err != nil {
		return nil, err
	}
	return newAudioEngine(cfg, logger), nil
}

// openHistory returns nil when history is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
