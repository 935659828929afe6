// Package config loads the server configuration (YAML file plus CARPRICE_
// environment overrides) and the terminal client configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CARPRICE_SERVER_PORT.
const EnvPrefix = "CARPRICE"

// Model sources.
const (
	SourceFile   = "file"
	SourceMinio  = "minio"
	SourceRemote = "remote"
)

type Config struct {
	Server Server `mapstructure:"server"`
	Model  Model  `mapstructure:"model"`
	Theme  Theme  `mapstructure:"theme"`
}

type Server struct {
	Port string `mapstructure:"port"`
}

// Address returns the listen address for Port.
func (s Server) Address() string {
	port := strings.TrimSpace(s.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

type Model struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
	Minio  Minio  `mapstructure:"minio"`
	Remote Remote `mapstructure:"remote"`
}

type Minio struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Object    string `mapstructure:"object"`
	Secure    bool   `mapstructure:"secure"`
}

type Remote struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Features []string      `mapstructure:"features"`
}

type Theme struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

var defaults = map[string]any{
	"server.port":            "5000",
	"model.source":           SourceFile,
	"model.path":             "model/model.yaml",
	"model.minio.endpoint":   "",
	"model.minio.access_key": "",
	"model.minio.secret_key": "",
	"model.minio.bucket":     "",
	"model.minio.object":     "model.yaml",
	"model.minio.secure":     false,
	"model.remote.url":       "",
	"model.remote.timeout":   "10s",
	"model.remote.features":  []string{},
	"theme.name":             "",
	"theme.variant":          "",
}

// InitConfig reads filename (YAML) and applies environment overrides. An
// empty filename uses defaults and environment only.
func InitConfig(filename string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename = strings.TrimSpace(filename); filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", filename, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected model source has what it needs.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil config")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("config: server.port is required")
	}
	c.Model.Source = strings.ToLower(strings.TrimSpace(c.Model.Source))
	switch c.Model.Source {
	case SourceFile:
		if strings.TrimSpace(c.Model.Path) == "" {
			return errors.New("config: model.path is required for file source")
		}
	case SourceMinio:
		m := c.Model.Minio
		if m.Endpoint == "" || m.Bucket == "" || m.Object == "" {
			return errors.New("config: model.minio endpoint, bucket and object are required")
		}
	case SourceRemote:
		if strings.TrimSpace(c.Model.Remote.URL) == "" {
			return errors.New("config: model.remote.url is required for remote source")
		}
	default:
		return fmt.Errorf("config: unknown model.source %q", c.Model.Source)
	}
	return nil
}
