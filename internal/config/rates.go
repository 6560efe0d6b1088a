package config

import (
	"fmt"
	"strings"
)

// RatePreset is a named standard rate a user can pick instead of typing one.
// Min and Max describe the span for regions without a single rate; they are
// zero when Rate is exact.
type RatePreset struct {
	Region string  `yaml:"region" json:"region"`
	Type   string  `yaml:"type" json:"type"`
	Rate   float64 `yaml:"rate" json:"rate"`
	Min    float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max    float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Note   string  `yaml:"note,omitempty" json:"note,omitempty"`
}

// DefaultRates returns the built-in standard rates.
func DefaultRates() []RatePreset {
	return []RatePreset{
		{Region: "United Kingdom", Type: "VAT", Rate: 20},
		{Region: "European Union", Type: "VAT", Rate: 21, Min: 17, Max: 27, Note: "average"},
		{Region: "United States", Type: "Sales Tax", Rate: 0, Min: 0, Max: 13.5, Note: "state + local"},
		{Region: "Canada", Type: "GST/HST", Rate: 5, Min: 5, Max: 15},
		{Region: "Japan", Type: "Consumption Tax", Rate: 10},
	}
}

// HasRange reports whether the preset spans a range of rates.
func (p RatePreset) HasRange() bool {
	return p.Max > p.Min
}

// Validate returns warnings for presets that can never produce a result.
func (p RatePreset) Validate() []string {
	var warnings []string
	if p.Rate < 0 {
		warnings = append(warnings, fmt.Sprintf("Rate preset '%s' has negative rate %v - conversions will show no result",
			p.Region, p.Rate))
	}
	if p.HasRange() && (p.Rate < p.Min || p.Rate > p.Max) {
		warnings = append(warnings, fmt.Sprintf("Rate preset '%s' rate %v is outside its range %v-%v",
			p.Region, p.Rate, p.Min, p.Max))
	}
	if p.Min < 0 || p.Max < 0 {
		warnings = append(warnings, fmt.Sprintf("Rate preset '%s' has a negative range bound", p.Region))
	}
	return warnings
}

// PresetRate looks up a preset by region, ignoring case. The first match wins.
func (c *Configuration) PresetRate(region string) (RatePreset, bool) {
	key := strings.ToLower(strings.TrimSpace(region))
	for _, preset := range c.Rates {
		if strings.ToLower(strings.TrimSpace(preset.Region)) == key {
			return preset, true
		}
	}
	return RatePreset{}, false
}
