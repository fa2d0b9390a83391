// Package config loads storefront settings from defaults, an optional YAML
// file, STOREFRONT_* environment variables and, last, command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/storefront/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STOREFRONT_"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel       string  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat      string  `mapstructure:"log_format" yaml:"log_format"`
	Addr           string  `mapstructure:"addr" yaml:"addr"`
	MetricsEnabled bool    `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
	Store          Store   `mapstructure:"store" yaml:"store"`
	Catalog        Catalog `mapstructure:"catalog" yaml:"catalog"`
	MaxInputSize   int     `mapstructure:"max_input_size" yaml:"max_input_size"`
}

// Store selects and configures session persistence.
type Store struct {
	Kind          string        `mapstructure:"kind" yaml:"kind"`
	Dir           string        `mapstructure:"dir" yaml:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" yaml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	LockTTL       time.Duration `mapstructure:"lock_ttl" yaml:"lock_ttl"`
}

// Catalog points at an alternative product catalog. Both empty means the built-in one.
type Catalog struct {
	// File is a YAML or JSON catalog.
	File string `mapstructure:"file" yaml:"file"`
	// Dir is a directory of product documents.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":8080",
		MetricsEnabled: true,
		Store: Store{
			Kind:      StoreFile,
			Dir:       ".storefront/sessions",
			RedisAddr: "localhost:6379",
			LockTTL:   30 * time.Second,
		},
	}
}

// Load reads the configuration using the process environment.
// path may be empty, in which case only defaults and environment apply.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Environ())
}

// LoadWithEnv is Load with an explicit environment (KEY=VALUE pairs).
func LoadWithEnv(path string, environ []string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := decode(raw, &cfg, true); err != nil {
			return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	if env := envMap(environ); len(env) > 0 {
		if err := decode(env, &cfg, false); err != nil {
			return cfg, fmt.Errorf("invalid environment: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return raw, nil
}

// envMap turns STOREFRONT_STORE_REDIS_ADDR=x into {"store": {"redis_addr": "x"}}.
// Keys are matched against the known sections so nested names with
// underscores stay intact.
func envMap(environ []string) map[string]any {
	out := make(map[string]any)
	for _, kv := range environ {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

		section, field, nested := strings.Cut(name, "_")
		if nested && (section == "store" || section == "catalog") {
			sub, _ := out[section].(map[string]any)
			if sub == nil {
				sub = make(map[string]any)
				out[section] = sub
			}
			sub[field] = val
			continue
		}
		out[name] = val
	}
	return out
}

// decode merges input into cfg. strict rejects keys Config does not know.
func decode(input map[string]any, cfg *Config, strict bool) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Validate checks that the settings can be used.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	switch c.Store.Kind {
	case StoreMemory:
	case StoreFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required for the file store")
		}
	case StoreRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store kind %q (want memory, file or redis)", c.Store.Kind)
	}
	if c.Catalog.File != "" && c.Catalog.Dir != "" {
		return fmt.Errorf("catalog.file and catalog.dir are mutually exclusive")
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative")
	}
	return nil
}
