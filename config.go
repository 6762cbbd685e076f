package fbox

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

//go:embed config.default.yaml
var defaultConfig []byte

// ConfigJSONEnv names the environment variable whose JSON value is merged
// over the loaded configuration.
const ConfigJSONEnv = "FBOX_CONFIG_JSON"

// Config holds the file layer configuration.
type Config struct {
	// Backend is the backend name: "io", "fio", "mmap", "rclone", etc.
	// An empty name selects the process-wide current backend.
	Backend string `json:"backend" yaml:"backend"`

	// BasePath scopes relative paths for backends that support it.
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`

	// Options holds backend-specific configuration.
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`

	// LogLevel enables logging to stderr at the given level.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Logger overrides LogLevel when set.
	Logger *zerolog.Logger `json:"-" yaml:"-"`

	// Metrics instruments every descriptor operation when set.
	Metrics *Metrics `json:"-" yaml:"-"`
}

// StringOption returns the string option key, or def when unset.
func (c *Config) StringOption(key, def string) string {
	if v, ok := c.Options[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// IntOption returns the integer option key, or def when unset. Numbers decoded
// from JSON arrive as float64 and are accepted too.
func (c *Config) IntOption(key string, def int) int {
	switch n := c.Options[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

func (c *Config) logger() (zerolog.Logger, error) {
	if c.Logger != nil {
		return *c.Logger, nil
	}
	return NewLogger(os.Stderr, c.LogLevel)
}

// LoadConfig builds a Config from the embedded defaults, the optional file
// at path (.yaml, .yml or .json) and the FBOX_CONFIG_JSON environment
// variable, each layer overriding the previous one.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("fbox: load default config: %w", err)
	}

	if path != "" {
		parser, err := configParser(filepath.Ext(path))
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("fbox: load config %s: %w", path, err)
		}
	}

	if raw := os.Getenv(ConfigJSONEnv); raw != "" {
		if err := k.Load(rawbytes.Provider([]byte(raw)), json.Parser()); err != nil {
			return nil, fmt.Errorf("fbox: load config from %s: %w", ConfigJSONEnv, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("fbox: decode config: %w", err)
	}
	return &cfg, nil
}

func configParser(ext string) (koanf.Parser, error) {
	switch ext {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, fmt.Errorf("fbox: no config parser for extension %q", ext)
}
