// Package config reads the plugin's environment configuration.
package config

import (
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Prefix is prepended to every variable, e.g. APOLLO_LOG_LEVEL.
const Prefix = "APOLLO"

type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// OTelEndpoint enables OTLP trace export when set.
	OTelEndpoint string `envconfig:"OTEL_ENDPOINT"`
	OTelService  string `envconfig:"OTEL_SERVICE" default:"protoc-gen-apollo"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return c, nil
}

// NewLogger builds a logger writing to w at the configured level and format.
// The plugin protocol owns stdout, so w is normally stderr.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)

	switch c.LogFormat {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	default:
		return nil, fmt.Errorf("unsupported log format '%s'", c.LogFormat)
	}
	return log, nil
}
