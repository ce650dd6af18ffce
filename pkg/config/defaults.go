package config

import "github.com/Sumatoshi-tech/statkit/pkg/alg/quartile"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Quartile defaults.
const (
	DefaultMedianBehavior    = "exclude-both"
	DefaultMildMultiplier    = quartile.DefaultMildMultiplier
	DefaultExtremeMultiplier = quartile.DefaultExtremeMultiplier
)

// Comparison defaults.
const DefaultTolerancePercent = 0.01

// Logging defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = LogFormatText
)

// Output defaults.
const (
	DefaultOutputFormat = FormatText
	DefaultPrecision    = 4

	maxPrecision = 17
)
