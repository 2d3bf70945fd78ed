// Package config loads the CLI configuration from defaults, an optional YAML file,
// EVSS_* environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mr-shifu/evss/core/math/curve"
	"github.com/mr-shifu/evss/pkg/cryptosuite/sw/pedersenpc"
	"github.com/mr-shifu/evss/pkg/logging"
	"github.com/spf13/viper"
)

const EnvPrefix = "EVSS"

// Keys
const (
	KeyCurve     = "curve"
	KeyDegree    = "degree"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
	KeyOutput    = "output"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	// Curve names the group, "secp256k1" or "edwards25519".
	Curve string `mapstructure:"curve"`
	// Degree is the number of shares needed to reconstruct, or one more than the
	// accumulator capacity.
	Degree int `mapstructure:"degree"`
	Log    Log `mapstructure:"log"`
	// Output is the directory written by deal and accumulate.
	Output string `mapstructure:"output"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyCurve, curve.Secp256k1{}.Name())
	v.SetDefault(KeyDegree, 4)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, logging.FormatText)
	v.SetDefault(KeyOutput, ".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file if set and returns the validated configuration.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", file, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := curve.FromName(c.Curve); err != nil {
		return fmt.Errorf("%w: curve %q", ErrInvalidConfig, c.Curve)
	}
	if c.Degree < 1 || c.Degree > pedersenpc.MaxDegree {
		return fmt.Errorf("%w: degree %d", ErrInvalidConfig, c.Degree)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (c *Config) Group() (curve.Curve, error) {
	return curve.FromName(c.Curve)
}

// Scheme returns the commitment scheme over the configured curve.
func (c *Config) Scheme() (*pedersenpc.Scheme, error) {
	group, err := c.Group()
	if err != nil {
		return nil, err
	}
	return pedersenpc.New(group), nil
}

func (c *Config) Logger(w io.Writer) (*logging.Logger, error) {
	return logging.NewLogger(w, c.Log.Level, c.Log.Format)
}
