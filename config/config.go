package config // CLI configuration file

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrUnknownKey = errors.New("unknown configuration key")

var validate = validator.New()

// Config is everything the subcommands read. Values come from the
// defaults, then the YAML file, then key=value overrides.
type Config struct {
	Search    SearchConfig `yaml:"search"`
	ModelPath string       `yaml:"model_path"`
	WildType  string       `yaml:"wild_type" validate:"omitempty,alpha"`
	LogLevel  string       `yaml:"log_level" validate:"oneof=debug info warn error"`
	Format    string       `yaml:"format" validate:"oneof=text json yaml"`
}

// SearchConfig holds the greedy search parameters, in nm.
type SearchConfig struct {
	Target       float64 `yaml:"target" validate:"gte=0"`
	WTWavelength float64 `yaml:"wt_wavelength" validate:"gt=0"`
	Threshold    float64 `yaml:"threshold" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Search: SearchConfig{
			WTWavelength: 576,
			Threshold:    5,
		},
		LogLevel: "info",
		Format:   "text",
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseArgs applies "key=value" overrides, e.g. "search.target=610".
func (c *Config) ParseArgs(args []string) error {
	for _, arg := range args {
		kv := splitOption(arg)
		if err := c.set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) set(key, value string) error {
	switch strings.ToLower(key) {
	case "search.target", "target":
		return setFloat(&c.Search.Target, key, value)
	case "search.wt_wavelength", "wt_wavelength":
		return setFloat(&c.Search.WTWavelength, key, value)
	case "search.threshold", "threshold":
		return setFloat(&c.Search.Threshold, key, value)
	case "model_path", "model":
		c.ModelPath = value
	case "wild_type", "wt":
		c.WildType = strings.ToUpper(value)
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	case "format":
		c.Format = strings.ToLower(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

func setFloat(dst *float64, key, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: expected a number, got %q", key, value)
	}
	*dst = f
	return nil
}

// splitOption cuts at the first '='; a bare key gets an empty value.
func splitOption(arg string) [2]string {
	var kv [2]string
	for i, ch := range arg {
		if ch == '=' {
			kv[0] = arg[:i]
			kv[1] = arg[i+1:]
			return kv
		}
	}
	kv[0] = arg
	kv[1] = ""
	return kv
}
