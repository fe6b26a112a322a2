// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the qname command configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of the environment variables read by [Load].
const EnvPrefix = "QNAME_"

// Config holds the command configuration.
type Config struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Format is how encoded qnames are printed: "hex" or "dec".
	Format string `koanf:"format" validate:"required,oneof=hex dec"`

	// Strict rejects names that cannot be represented on the wire.
	Strict bool `koanf:"strict"`

	// IDNA converts names to ASCII before encoding.
	IDNA bool `koanf:"idna"`

	// FQDN prints decoded names with a single trailing dot.
	FQDN bool `koanf:"fqdn"`

	// Canonical prints decoded names lowercased with a single trailing dot.
	Canonical bool `koanf:"canonical"`
}

// DefaultConfig reproduces the unchecked codec behavior.
var DefaultConfig = Config{
	Env:       "prod",
	LogLevel:  "warn",
	Format:    "dec",
	Strict:    false,
	IDNA:      false,
	FQDN:      false,
	Canonical: false,
}

// envLoader loads QNAME_ prefixed variables with lowercased keys
// and can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DefaultConfig, "koanf"), nil)
}

// Load returns the defaults overridden by the environment, validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the field constraints declared in the struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
