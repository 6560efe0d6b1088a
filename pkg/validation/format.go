// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/tax-calculator/pkg/constants"
	"golang.org/x/text/language"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ResolveOutputFormat picks the effective output format: a non-empty
// override (the -output-format flag) wins over the configured value, and
// pretty is used when neither is set.
func ResolveOutputFormat(configured, override string) (string, error) {
	format := strings.TrimSpace(override)
	if format == "" {
		format = strings.TrimSpace(configured)
	}
	if format == "" {
		return constants.OutputFormatPretty, nil
	}
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// ValidateLocale checks that locale is a well-formed BCP 47 language tag.
func ValidateLocale(locale string) error {
	if strings.TrimSpace(locale) == "" {
		return fmt.Errorf("expected a locale such as %s, got an empty value", constants.DefaultLocale)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}
