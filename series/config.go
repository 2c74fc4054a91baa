package series

import (
	"fmt"

	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
	"gopkg.in/yaml.v3"
)

type TruncationMode string

const (
	TruncationNone     TruncationMode = "none"
	TruncationNorm     TruncationMode = "norm"
	TruncationExponent TruncationMode = "exponent"
)

type Config struct {
	NumericalZero float64        `yaml:"numericalZero" json:"numericalZero"`
	Truncation    TruncationMode `yaml:"truncation" json:"truncation"`

	// RelativePrecision drives the norm truncation threshold.
	RelativePrecision float64 `yaml:"relativePrecision" json:"relativePrecision"`
	// ExponentLimits maps coefficient argument names to the highest exponent kept.
	ExponentLimits map[string]int `yaml:"exponentLimits" json:"exponentLimits"`

	PowerTolerance float64 `yaml:"powerTolerance" json:"powerTolerance"`
	MaxPowerSteps  int     `yaml:"maxPowerSteps" json:"maxPowerSteps"`

	// ReferenceTime is where coefficient arguments are valued when computing norms.
	ReferenceTime float64 `yaml:"referenceTime" json:"referenceTime"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	_ = cfg.normalize()

	return cfg
}

func (cfg *Config) normalize() error {
	if cfg.NumericalZero <= 0 {
		cfg.NumericalZero = 1e-80
	}

	switch cfg.Truncation {
	case "":
		cfg.Truncation = TruncationNone
	case TruncationNone, TruncationNorm, TruncationExponent:
	default:
		return fmt.Errorf("%w: truncation %q", ErrBadConfig, cfg.Truncation)
	}

	if cfg.RelativePrecision <= 0 {
		cfg.RelativePrecision = 1e-8
	}

	if cfg.PowerTolerance <= 0 {
		cfg.PowerTolerance = 1e-12
	}

	if cfg.MaxPowerSteps <= 0 {
		cfg.MaxPowerSteps = 200
	}

	for name, limit := range cfg.ExponentLimits {
		if limit < 0 {
			return fmt.Errorf("%w: negative exponent limit for %q", ErrBadConfig, name)
		}
	}

	return nil
}

func ParseConfig(d []byte) (*Config, error) {
	cfg := &Config{}

	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func LoadConfig(file string, storage stg.FileStorage) (*Config, error) {
	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	d, err := storage.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return ParseConfig(d)
}
