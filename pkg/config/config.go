// Package config loads labelkit.toml.
//
//	[editor]
//	order = ["barcode", "sender", "recipient", "items", "disclaimer"]
//
//	[editor.heights]
//	items = 160
//
//	[editor.fields."sender.phone"]
//	visible = true
//	font_size = 9
//
//	[cache]
//	backend = "redis"        # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[preview]
//	addr = "127.0.0.1:8080"
//
// Every key is optional. [Config.InitialState] overlays the [editor] table
// on the default editor state and validates the result.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/label"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "labelkit.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Defaults.
const (
	DefaultTTL         = 24 * time.Hour
	DefaultPreviewAddr = "127.0.0.1:8080"
	DefaultRedisAddr   = "localhost:6379"
)

// Config is the decoded configuration file.
type Config struct {
	Editor  Editor  `toml:"editor"`
	Cache   Cache   `toml:"cache"`
	Preview Preview `toml:"preview"`
}

// Editor overrides the initial editor state.
type Editor struct {
	Order   []string           `toml:"order"`
	Heights map[string]float64 `toml:"heights"`
	Fields  map[string]Field   `toml:"fields"`
}

// Field overrides one field. Unset keys keep their defaults.
type Field struct {
	Visible  *bool    `toml:"visible"`
	FontSize *float64 `toml:"font_size"`
}

// Cache selects the artifact cache.
type Cache struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	TTL       time.Duration `toml:"ttl"`
}

// Preview configures the local preview server.
type Preview struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: DefaultRedisAddr,
			TTL:       DefaultTTL,
		},
		Preview: Preview{Addr: DefaultPreviewAddr},
	}
}

// Load reads a configuration file. A missing file yields the defaults when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates it.
func Parse(data string) (Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cache and editor settings.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis backend needs redis_addr")
	}
	_, err := c.InitialState()
	return err
}

// InitialState overlays the editor table on [label.DefaultState].
func (c Config) InitialState() (label.EditorState, error) {
	st := label.DefaultState()
	if len(c.Editor.Order) > 0 {
		st.SectionOrder = make([]label.SectionKey, len(c.Editor.Order))
		for i, k := range c.Editor.Order {
			st.SectionOrder[i] = label.SectionKey(k)
		}
	}
	for k, h := range c.Editor.Heights {
		if _, ok := label.Section(label.SectionKey(k)); !ok {
			return label.EditorState{}, errors.New(errors.ErrCodeInvalidConfig, "unknown section %q in [editor.heights]", k)
		}
		st.SectionHeights[label.SectionKey(k)] = h
	}
	for k, f := range c.Editor.Fields {
		key := label.FieldKey(k)
		if _, ok := label.Field(key); !ok {
			return label.EditorState{}, errors.New(errors.ErrCodeInvalidConfig, "unknown field %q in [editor.fields]", k)
		}
		fs := st.Fields[key]
		if f.Visible != nil {
			fs.Visible = *f.Visible
		}
		if f.FontSize != nil {
			fs.FontSize = *f.FontSize
		}
		st.Fields[key] = fs
	}
	if err := label.ValidateState(st); err != nil {
		return label.EditorState{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid [editor] table")
	}
	return st, nil
}
