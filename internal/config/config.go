// Package config provides configuration management for go-cuillere.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// DefaultListenAddr is where the server binds when nothing overrides it
	DefaultListenAddr = "127.0.0.1:7878"

	// EnvPrefix prefixes every environment variable read by Load
	EnvPrefix = "CUILLERE_"

	// DotEnvFile is loaded into the environment if it exists
	DotEnvFile = ".env"
)

// Log formats
const (
	LogFormatAuto = "auto" // text on a terminal, json otherwise
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// MainConfig holds the configuration for go-cuillere
type MainConfig struct {
	Web WebConfig `yaml:"web"`

	AppVersion string `yaml:"-"` // Application version, set at build time
}

// WebConfig holds web server configuration
type WebConfig struct {
	ListenAddr  string   `yaml:"listen_addr"`
	SSL         bool     `yaml:"ssl"`
	CertFile    string   `yaml:"cert_file,omitempty"`
	KeyFile     string   `yaml:"key_file,omitempty"`
	Debug       bool     `yaml:"debug"` // gin debug mode and debug logging
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	PprofAddr   string   `yaml:"pprof_addr,omitempty"`
	CORSOrigins []string `yaml:"cors_origins"`
	Gzip        bool     `yaml:"gzip"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		AppVersion: AppVersion,
		Web: WebConfig{
			ListenAddr:  DefaultListenAddr,
			LogLevel:    "info",
			LogFormat:   LogFormatAuto,
			CORSOrigins: []string{"*"},
			Gzip:        true,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then the .env file, then CUILLERE_* environment variables.
func Load(path string) (*MainConfig, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(DotEnvFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
		}
	} else {
		logrus.Debugf("[CONFIG]: Loaded environment from %s", DotEnvFile)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *MainConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return nil
}

// applyEnv overrides fields from environment variables found by lookup
func (c *MainConfig) applyEnv(lookup func(string) (string, bool)) error {
	w := &c.Web

	if v, ok := lookup(EnvPrefix + "LISTEN_ADDR"); ok {
		w.ListenAddr = v
	}
	if v, ok := lookup(EnvPrefix + "CERT_FILE"); ok {
		w.CertFile = v
	}
	if v, ok := lookup(EnvPrefix + "KEY_FILE"); ok {
		w.KeyFile = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		w.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		w.LogFormat = v
	}
	if v, ok := lookup(EnvPrefix + "PPROF_ADDR"); ok {
		w.PprofAddr = v
	}
	if v, ok := lookup(EnvPrefix + "CORS_ORIGINS"); ok {
		w.CORSOrigins = splitList(v)
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"SSL", &w.SSL},
		{"DEBUG", &w.Debug},
		{"GZIP", &w.Gzip},
	}
	for _, b := range bools {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, b.name, v, err)
		}
		*b.dst = parsed
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with
func (c *MainConfig) Validate() error {
	w := c.Web

	_, port, err := net.SplitHostPort(w.ListenAddr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", w.ListenAddr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port number in listen address %q (must be between 1 and 65535)", w.ListenAddr)
	}

	if _, err := logrus.ParseLevel(w.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	switch w.LogFormat {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (must be one of auto, text, json)", w.LogFormat)
	}

	if w.SSL && (w.CertFile == "" || w.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified in config")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
