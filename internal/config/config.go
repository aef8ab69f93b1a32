// Package config loads entrykit and preview settings from defaults, an
// optional TOML or YAML file and ENTRYKIT_ environment variables, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/entrykit"
	"github.com/eringen/entrykit/preview"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// separates levels: ENTRYKIT_PREVIEW__SITE_URL sets preview.site_url.
const EnvPrefix = "ENTRYKIT_"

// Config is the complete configuration of the entrykit command.
type Config struct {
	Render  entrykit.Config `koanf:"render"`
	Preview preview.Config  `koanf:"preview"`
}

func defaults() map[string]any {
	return map[string]any{
		"render.locale":              "en",
		"render.date_format":         "January 2, 2006",
		"render.avatar_size":         60,
		"render.listing_image_size":  "post-thumbnail",
		"render.singular_image_size": "full",
		"preview.site_name":          "Preview",
		"preview.site_url":           "http://localhost:3000",
		"preview.addr":               ":3000",
		"preview.database_path":      "data/entries.db",
		"preview.uploads_dir":        "uploads",
		"preview.cache_ttl":          "5m",
		"preview.per_page":           10,
	}
}

// Load reads the configuration. path may be empty; otherwise its extension
// picks the parser (.toml, .yaml or .yml).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// 3. Env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// envKey maps ENTRYKIT_PREVIEW__SITE_URL to preview.site_url.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
}
