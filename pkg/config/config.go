// Package config provides configuration loading and validation for statkit.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/partition"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/quartile"
)

// Sentinel validation errors.
var (
	ErrInvalidMultiplier = errors.New("outlier multiplier must be non-negative")
	ErrInvalidTolerance  = errors.New("comparison tolerance must be non-negative")
	ErrInvalidLogFormat  = errors.New("log format must be text or json")
	ErrInvalidFormat     = errors.New("output format must be text, json or yaml")
	ErrInvalidPrecision  = errors.New("output precision out of range")
)

// Config holds all configuration for statkit.
type Config struct {
	Quartiles  QuartilesConfig  `mapstructure:"quartiles"`
	Comparison ComparisonConfig `mapstructure:"comparison"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Output     OutputConfig     `mapstructure:"output"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// QuartilesConfig holds quartile and outlier fence configuration.
// The per-side multipliers override the mild and extreme ones when set.
type QuartilesConfig struct {
	MedianBehavior    string   `mapstructure:"median_behavior"`
	MildMultiplier    float64  `mapstructure:"mild_multiplier"`
	ExtremeMultiplier float64  `mapstructure:"extreme_multiplier"`
	LowerMild         *float64 `mapstructure:"lower_mild"`
	UpperMild         *float64 `mapstructure:"upper_mild"`
	LowerExtreme      *float64 `mapstructure:"lower_extreme"`
	UpperExtreme      *float64 `mapstructure:"upper_extreme"`
}

// ComparisonConfig holds tolerances for comparing two data sets.
type ComparisonConfig struct {
	// TolerancePercent is the largest relative difference, in percent,
	// at which two statistics are reported as equal.
	TolerancePercent float64 `mapstructure:"tolerance_percent"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OutputConfig holds report rendering configuration.
type OutputConfig struct {
	Format    string `mapstructure:"format"`
	Precision int    `mapstructure:"precision"`
	NoColor   bool   `mapstructure:"no_color"`
}

// TelemetryConfig holds OTLP export settings. Export is off while
// OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	// OTLPHeaders is a "key=value,key=value" list sent with every export.
	OTLPHeaders string `mapstructure:"otlp_headers"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	// Set defaults.
	setDefaults(viperCfg)

	// Read config file.
	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("statkit")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/statkit")
	}

	// Read environment variables.
	viperCfg.SetEnvPrefix("STATKIT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Quartiles: QuartilesConfig{
			MedianBehavior:    DefaultMedianBehavior,
			MildMultiplier:    DefaultMildMultiplier,
			ExtremeMultiplier: DefaultExtremeMultiplier,
		},
		Comparison: ComparisonConfig{TolerancePercent: DefaultTolerancePercent},
		Logging:    LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Output:     OutputConfig{Format: DefaultOutputFormat, Precision: DefaultPrecision},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Quartile defaults.
	viperCfg.SetDefault("quartiles.median_behavior", DefaultMedianBehavior)
	viperCfg.SetDefault("quartiles.mild_multiplier", DefaultMildMultiplier)
	viperCfg.SetDefault("quartiles.extreme_multiplier", DefaultExtremeMultiplier)

	// Comparison defaults.
	viperCfg.SetDefault("comparison.tolerance_percent", DefaultTolerancePercent)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Output defaults.
	viperCfg.SetDefault("output.format", DefaultOutputFormat)
	viperCfg.SetDefault("output.precision", DefaultPrecision)
	viperCfg.SetDefault("output.no_color", false)

	// Telemetry defaults.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.otlp_headers", "")
}

// Validate reports the first invalid setting of c.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	_, err := config.QuartileOptions()
	if err != nil {
		return err
	}

	tol := config.Comparison.TolerancePercent
	if tol < 0 || math.IsNaN(tol) {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, tol)
	}

	switch config.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	switch config.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Output.Format)
	}

	if config.Output.Precision < 0 || config.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, config.Output.Precision)
	}

	return nil
}

// QuartileOptions converts the quartile section into quartile.Compute options.
func (c *Config) QuartileOptions() ([]quartile.Option, error) {
	q := c.Quartiles

	behavior, err := partition.ParseMedianBehavior(q.MedianBehavior)
	if err != nil {
		return nil, err
	}

	multipliers := []struct {
		name  string
		value *float64
		opt   func(float64) quartile.Option
	}{
		{"mild_multiplier", &q.MildMultiplier, quartile.WithMildMultiplier},
		{"extreme_multiplier", &q.ExtremeMultiplier, quartile.WithExtremeMultiplier},
		{"lower_mild", q.LowerMild, quartile.WithLowerMildMultiplier},
		{"upper_mild", q.UpperMild, quartile.WithUpperMildMultiplier},
		{"lower_extreme", q.LowerExtreme, quartile.WithLowerExtremeMultiplier},
		{"upper_extreme", q.UpperExtreme, quartile.WithUpperExtremeMultiplier},
	}

	opts := []quartile.Option{quartile.WithMedianBehavior(behavior)}

	for _, m := range multipliers {
		if m.value == nil {
			continue
		}

		if *m.value < 0 || math.IsNaN(*m.value) {
			return nil, fmt.Errorf("%w: %s %v", ErrInvalidMultiplier, m.name, *m.value)
		}

		opts = append(opts, m.opt(*m.value))
	}

	return opts, nil
}
