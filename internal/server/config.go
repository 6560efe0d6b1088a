package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/tax-calculator/internal/config"
	"github.com/iwvelando/tax-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address string `yaml:"address"`
	// MaxBodySize limits POST /api/convert bodies, e.g. "4K". It must lie
	// between constants.MinBodySizeBytes and constants.MaxBodySizeBytes.
	MaxBodySize       string               `yaml:"maxBodySize"`
	ReadHeaderTimeout time.Duration        `yaml:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration        `yaml:"shutdownTimeout"`
	Logging           config.LoggingConfig `yaml:"logging"`

	bodySizeBytes int64
}

func defaultConfig() *Config {
	return &Config{
		Address:           constants.DefaultServerAddress,
		MaxBodySize:       FormatSize(constants.DefaultMaxBodySizeBytes),
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		ShutdownTimeout:   constants.DefaultShutdownTimeout,
		bodySizeBytes:     constants.DefaultMaxBodySizeBytes,
	}
}

// LoadConfig reads the server YAML at path. An empty path or a missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// BodySizeBytes returns the /api/convert body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the body limit, e.g. from a command-line flag.
func (c *Config) SetBodySizeBytes(size int64) error {
	if err := checkBodySize(size); err != nil {
		return err
	}
	c.bodySizeBytes = size
	c.MaxBodySize = FormatSize(size)
	return nil
}

func (c *Config) resolve() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if strings.TrimSpace(c.MaxBodySize) == "" {
		c.bodySizeBytes = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = FormatSize(c.bodySizeBytes)
		return nil
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	return c.SetBodySizeBytes(size)
}

func checkBodySize(size int64) error {
	if size < constants.MinBodySizeBytes || size > constants.MaxBodySizeBytes {
		return fmt.Errorf("body size %d out of range %d-%d bytes",
			size, constants.MinBodySizeBytes, constants.MaxBodySizeBytes)
	}
	return nil
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// ParseSize converts a byte count with an optional B, K or M suffix into
// bytes. Request bodies never need gigabytes, so larger units are rejected.
func ParseSize(value string) (int64, error) {
	text := strings.ToUpper(strings.TrimSpace(value))
	digits := strings.TrimRightFunc(text, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(text[len(digits):])

	if digits == "" {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q in %q", unit, value)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n > constants.MaxBodySizeBytes/multiplier {
		return 0, fmt.Errorf("size %q exceeds %d bytes", value, constants.MaxBodySizeBytes)
	}
	return n * multiplier, nil
}

// FormatSize renders size with the largest unit that divides it exactly.
func FormatSize(size int64) string {
	switch {
	case size >= 1<<20 && size%(1<<20) == 0:
		return strconv.FormatInt(size>>20, 10) + "M"
	case size >= 1<<10 && size%(1<<10) == 0:
		return strconv.FormatInt(size>>10, 10) + "K"
	default:
		return strconv.FormatInt(size, 10)
	}
}
