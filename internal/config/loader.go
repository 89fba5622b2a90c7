package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"
)

// Load reads configuration from environment variables, applies defaults for
// unset values and validates the result. Every bad variable is reported, not
// just the first.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct populates struct fields from their env tags, descending into
// nested structs.
func loadStruct(v reflect.Value) error {
	var result *multierror.Error
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			result = multierror.Append(result, loadStruct(fieldVal))
			continue
		}

		envName, ok := field.Tag.Lookup("env")
		if !ok {
			continue
		}
		value, set := lookupEnv(envName, field.Tag.Get("envAlt"))
		if !set {
			if field.Tag.Get("required") == "true" {
				result = multierror.Append(result, fmt.Errorf("required environment variable %s is not set", envName))
				continue
			}
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s=%q: %w", envName, value, err))
		}
	}

	return result.ErrorOrNil()
}

// lookupEnv returns the first non-blank value of name or alt.
func lookupEnv(name, alt string) (string, bool) {
	for _, key := range []string{name, alt} {
		if key == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, true
		}
	}
	return "", false
}

var durationType = reflect.TypeOf(time.Duration(0))

// setField converts value to the field's type.
func setField(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		// Units are required; a bare number would be read as nanoseconds.
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))

	case field.Kind() == reflect.String:
		field.SetString(value)

	case field.Kind() == reflect.Int, field.Kind() == reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)

	case field.Kind() == reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String:
		var items []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}

	return nil
}

// Validate checks ranges and enumerations, reporting every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		fail("SERVER_PORT (%d) must be 1-65535", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		fail("SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		fail("SERVER_WRITE_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		fail("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Upload.MaxFileSize <= 0 {
		fail("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.MaxWaitTime <= 0 {
		fail("UPLOAD_MAX_WAIT_TIME must be positive")
	}
	if c.Upload.ParseTimeout <= 0 {
		fail("UPLOAD_PARSE_TIMEOUT must be positive")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		fail("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		fail("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format)
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB <= 0 {
			fail("LOG_MAX_SIZE_MB must be positive when LOG_FILE is set")
		}
		if c.Logging.MaxBackups < 0 {
			fail("LOG_MAX_BACKUPS must be non-negative")
		}
	}

	return result.ErrorOrNil()
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Upload: {MaxFileSize: %d, MaxWaitTime: %s, ParseTimeout: %s}, ",
		c.Upload.MaxFileSize, c.Upload.MaxWaitTime, c.Upload.ParseTimeout))
	b.WriteString(fmt.Sprintf("Export: {AllowForce: %v}, ", c.Export.AllowForce))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q, File: %q}",
		c.Logging.Level, c.Logging.Format, c.Logging.File))
	b.WriteString("}")
	return b.String()
}
