package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

const SupportedVersion = "1"

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
	Drafts  DraftsConfig  `yaml:"drafts"`
	Theme   ThemeConfig   `yaml:"theme"`
}

type APIConfig struct {
	BaseURL   string        `yaml:"base_url" default:"http://127.0.0.1:8000" env:"MSGBOARD_API_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout" default:"0s" env:"MSGBOARD_API_TIMEOUT"`
	UserAgent string        `yaml:"user_agent" default:"msgboard/1"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info" env:"LOG_LEVEL"`
	File  string `yaml:"file" default:"msgboard.log" env:"MSGBOARD_LOG_FILE"`
}

type DraftsConfig struct {
	Store       string `yaml:"store" default:"memory" env:"MSGBOARD_DRAFTS_STORE"`
	Path        string `yaml:"path" default:"./drafts.db" env:"MSGBOARD_DRAFTS_PATH"`
	Compression string `yaml:"compression" default:"zstd"`
}

type ThemeConfig struct {
	Default string `yaml:"default" default:"dark" env:"MSGBOARD_THEME"`
}

var AppConfig *Config

// LoadConfig loads path into AppConfig. A missing file is not an error.
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load builds a Config from defaults, then the yaml file at path, then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf(ErrParseConfigFmt, err)
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("unsupported configuration version %q (want %q)", c.Version, SupportedVersion)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", c.API.Timeout)
	}

	switch c.Drafts.Store {
	case DraftStoreMemory, DraftStoreSQLite:
	default:
		return fmt.Errorf("unknown drafts.store %q", c.Drafts.Store)
	}

	switch c.Drafts.Compression {
	case CompressionZstd, CompressionGzip, CompressionNone:
	default:
		return fmt.Errorf("unknown drafts.compression %q", c.Drafts.Compression)
	}

	switch c.Theme.Default {
	case DarkTheme, LightTheme:
	default:
		return fmt.Errorf("unknown theme.default %q", c.Theme.Default)
	}

	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	walkTagged(config, "default", func(field reflect.Value, fieldType reflect.StructField, value string) {
		// Slices only take a default when empty.
		if field.Kind() == reflect.Slice && field.Len() != 0 {
			return
		}
		if err := setFromString(field, value); err != nil {
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Err(err).
				Msg("Unsupported field type for default value")
		}
	})
}

// applyEnv overrides fields carrying an `env` tag with the value of that
// variable, when set.
func applyEnv(config interface{}, lookup func(string) (string, bool)) error {
	var firstErr error
	walkTagged(config, "env", func(field reflect.Value, fieldType reflect.StructField, name string) {
		value, ok := lookup(name)
		if !ok || value == "" {
			return
		}
		if err := setFromString(field, value); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalid value for %s: %w", name, err)
		}
	})
	return firstErr
}

func walkTagged(config interface{}, tag string, fn func(reflect.Value, reflect.StructField, string)) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively walk nested structs
		if field.Kind() == reflect.Struct {
			walkTagged(field.Addr().Interface(), tag, fn)
			continue
		}

		value := fieldType.Tag.Get(tag)
		if value == "" {
			continue
		}
		fn(field, fieldType, value)
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFromString(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		val, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(val)
	case reflect.Int, reflect.Int64:
		val, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(val)
	case reflect.Float64:
		val, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(val)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element %s", field.Type().Elem().Kind())
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for j, part := range parts {
			slice.Index(j).SetString(strings.TrimSpace(part))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
