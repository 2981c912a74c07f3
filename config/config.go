package config

import (
	"context"
	"time"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/seq"
	"github.com/kbukum/seqkit/validation"
)

// Config is the configuration shared by seqkit tools.
type Config struct {
	Name          string              `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string              `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version       string              `yaml:"version" mapstructure:"version"`
	Debug         bool                `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Limits        LimitsConfig        `yaml:"limits" mapstructure:"limits"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// LimitsConfig bounds the buffering operators of every pipeline a tool runs.
type LimitsConfig struct {
	// MaxBuffer is the most elements one buffering stage may hold. Zero means unlimited.
	MaxBuffer int `yaml:"max_buffer" mapstructure:"max_buffer" validate:"gte=0"`
}

// Limits converts the configuration to seq.Limits.
func (c LimitsConfig) Limits() seq.Limits {
	return seq.Limits{MaxBuffer: c.MaxBuffer}
}

// Context returns ctx carrying these limits.
func (c LimitsConfig) Context(ctx context.Context) context.Context {
	return seq.WithLimits(ctx, c.Limits())
}

// ObservabilityConfig switches on OTLP tracing and metrics export.
type ObservabilityConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,hostname_port"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	MetricInterval time.Duration `yaml:"metric_interval" mapstructure:"metric_interval" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()

	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 && c.Observability.Enabled {
		c.Observability.SampleRate = 1.0
	}
	if c.Observability.MetricInterval == 0 {
		c.Observability.MetricInterval = 15 * time.Second
	}
}

// Validate checks the struct tags of the whole tree, logging block included.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
