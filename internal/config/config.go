// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/tax-calculator/internal/calculator"
	"github.com/iwvelando/tax-calculator/pkg/constants"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
	"github.com/iwvelando/tax-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for tax-calculator.
type Configuration struct {
	Defaults Defaults      `yaml:"defaults,omitempty"`
	Rates    []RatePreset  `yaml:"rates,omitempty"`
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty"` // pretty, csv
	Locale         string `yaml:"locale,omitempty"` // BCP 47 tag, e.g. en-US
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
}

// Defaults are the values the calculator starts with before the user types
// anything. They are kept as text because they feed the same validation path
// as user input.
type Defaults struct {
	Amount    string `yaml:"amount,omitempty"`
	Rate      string `yaml:"rate,omitempty"`
	Direction string `yaml:"direction,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults fills every unset field with its built-in value.
func (c *Configuration) ApplyDefaults() {
	if c.Defaults.Amount == "" {
		c.Defaults.Amount = constants.DefaultAmount
	}
	if c.Defaults.Rate == "" {
		c.Defaults.Rate = constants.DefaultRate
	}
	if c.Defaults.Direction == "" {
		c.Defaults.Direction = constants.DefaultDirection
	}
	if c.Output.Locale == "" {
		c.Output.Locale = constants.DefaultLocale
	}
	if c.Output.CurrencySymbol == "" {
		c.Output.CurrencySymbol = constants.DefaultCurrencySymbol
	}
	if len(c.Rates) == 0 {
		c.Rates = DefaultRates()
	}
}

// DefaultDirection returns the parsed default direction, falling back to add
// when the configured value is not recognised.
func (c *Configuration) DefaultDirection() taxmath.Direction {
	direction, err := taxmath.ParseDirection(c.Defaults.Direction)
	if err != nil {
		return taxmath.Add
	}
	return direction
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if _, err := taxmath.ParseDirection(c.Defaults.Direction); err != nil {
		warnings = append(warnings, fmt.Sprintf("Default direction '%s' is not add or remove - falling back to add",
			c.Defaults.Direction))
	}

	if _, err := calculator.ParseInputs(c.Defaults.Amount, c.Defaults.Rate); err != nil {
		warnings = append(warnings, fmt.Sprintf("Default amount/rate will show no result: %v", err))
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if err := validation.ValidateLocale(c.Output.Locale); err != nil {
		warnings = append(warnings, err.Error())
	}

	seen := make(map[string]struct{}, len(c.Rates))
	for _, preset := range c.Rates {
		key := strings.ToLower(strings.TrimSpace(preset.Region))
		if key == "" {
			warnings = append(warnings, "Rate preset with empty region will not be selectable")
			continue
		}
		if _, dup := seen[key]; dup {
			warnings = append(warnings, fmt.Sprintf("Rate preset '%s' is defined more than once - first entry wins", preset.Region))
		}
		seen[key] = struct{}{}
		warnings = append(warnings, preset.Validate()...)
	}

	return warnings
}
