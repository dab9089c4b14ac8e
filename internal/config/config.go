// Package config loads quantumchart settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/chart"
	"github.com/gogpu/gg"
)

// Config captures the settings of the render CLI and the chart server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
	Chart    ChartConfig    `yaml:"chart"`
}

// ServerConfig controls the HTTP listeners.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
}

// UpstreamConfig configures the dashboard data API.
type UpstreamConfig struct {
	BaseURL        string        `yaml:"baseURL"`
	EvolutionsPath string        `yaml:"evolutionsPath"`
	BurnupPath     string        `yaml:"burnupPath"`
	Timeout        time.Duration `yaml:"timeout"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ChartConfig holds the default canvas and the assembly options.
type ChartConfig struct {
	Width          int               `yaml:"width"`
	Height         int               `yaml:"height"`
	Fields         []string          `yaml:"fields"`
	Labels         map[string]string `yaml:"labels"`
	Palette        []string          `yaml:"palette"`
	BandPadding    float64           `yaml:"bandPadding"`
	LeadingChannel string            `yaml:"leadingChannel"`
	FontSize       float64           `yaml:"fontSize"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("QUANTUMCHART_CONFIG")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
		},
		Upstream: UpstreamConfig{
			EvolutionsPath: "/api/perf/version-evolutions",
			BurnupPath:     "/api/bz/burnup",
			Timeout:        10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
		Chart: ChartConfig{
			Width:          960,
			Height:         480,
			Fields:         []string{chart.FieldP50, chart.FieldP95},
			Labels:         map[string]string{chart.FieldP50: "50th Percentile", chart.FieldP95: "95th Percentile"},
			Palette:        []string{"#FF8C8E", "#B6D806"},
			BandPadding:    0.1,
			LeadingChannel: chart.DefaultLeadingChannel,
			FontSize:       11,
		},
	}
}

// Validate reports settings that would make every render fail.
func (c *Config) Validate() error {
	if err := c.Chart.Size().Validate(); err != nil {
		return fmt.Errorf("chart size: %w", err)
	}
	if p := c.Chart.BandPadding; p < 0 || p >= 1 {
		return fmt.Errorf("chart bandPadding must be in [0, 1), got %v", p)
	}
	if _, err := c.Chart.colors(); err != nil {
		return err
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QUANTUMCHART_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("QUANTUMCHART_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("QUANTUMCHART_GRACEFUL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.GracefulTimeout = d
		}
	}
	if v := os.Getenv("QUANTUMCHART_UPSTREAM_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("QUANTUMCHART_UPSTREAM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if v := os.Getenv("QUANTUMCHART_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("QUANTUMCHART_LOG_FORMAT"); v != "" {
		cfg.Logging.JSON = strings.EqualFold(v, "json")
	}
	if v := os.Getenv("QUANTUMCHART_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.Width = n
		}
	}
	if v := os.Getenv("QUANTUMCHART_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Chart.Height = n
		}
	}
	if v := os.Getenv("QUANTUMCHART_FIELDS"); v != "" {
		cfg.Chart.Fields = strings.Split(v, ",")
	}
}

// Size returns the configured canvas size.
func (c ChartConfig) Size() chart.Size {
	return chart.Size{Width: c.Width, Height: c.Height}
}

// Options converts the settings into assembly options. Zero values keep
// the chart defaults.
func (c ChartConfig) Options() ([]chart.Option, error) {
	var opts []chart.Option
	if len(c.Fields) > 0 {
		opts = append(opts, chart.WithFields(c.Fields...))
	}
	if c.Labels != nil {
		opts = append(opts, chart.WithFieldLabels(c.Labels))
	}
	colors, err := c.colors()
	if err != nil {
		return nil, err
	}
	if len(colors) > 0 {
		opts = append(opts, chart.WithPalette(colors...))
	}
	if c.BandPadding != 0 {
		opts = append(opts, chart.WithBandPadding(c.BandPadding))
	}
	if c.LeadingChannel != "" {
		opts = append(opts, chart.WithLeadingChannel(c.LeadingChannel))
	}
	if c.FontSize > 0 {
		opts = append(opts, chart.WithFontSize(c.FontSize))
	}
	return opts, nil
}

func (c ChartConfig) colors() ([]gg.RGBA, error) {
	colors := make([]gg.RGBA, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := gg.ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("chart palette %q: %w", s, err)
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// NewLogger returns a slog.Logger writing to w at the configured level
// and format.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if l.JSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
