// Package constants provides shared constants for the tax-calculator application.
package constants

import "time"

// Tax conversion constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// RoundTripTolerance is the relative tolerance for add/remove round trips
	RoundTripTolerance = 1e-9
)

// Direction constants
const (
	// DirectionAdd converts a net amount into a gross amount
	DirectionAdd = "add"

	// DirectionRemove converts a gross amount into a net amount
	DirectionRemove = "remove"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Display defaults
const (
	// DefaultLocale is the BCP 47 tag used when no locale is configured
	DefaultLocale = "en-US"

	// DefaultCurrencySymbol is prefixed to formatted amounts
	DefaultCurrencySymbol = "$"
)

// Widget defaults, matching the initial state of the web calculator
const (
	DefaultAmount    = "100"
	DefaultRate      = "20"
	DefaultDirection = DirectionAdd
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum /api/convert request body (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// MinBodySizeBytes is the smallest accepted body limit. A conversion
	// request with long amount and rate strings fits well under it.
	MinBodySizeBytes int64 = 256

	// MaxBodySizeBytes is the largest accepted body limit (1 MB)
	MaxBodySizeBytes int64 = 1024 * 1024

	// DefaultReadHeaderTimeout bounds how long a client may take to send headers
	DefaultReadHeaderTimeout = 5 * time.Second

	// DefaultShutdownTimeout bounds graceful server shutdown
	DefaultShutdownTimeout = 10 * time.Second
)
