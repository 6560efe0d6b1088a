package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/tax-calculator/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error = %v", path, err)
		}
		if cfg.Address != constants.DefaultServerAddress {
			t.Errorf("expected default address, got %q", cfg.Address)
		}
		if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes || cfg.MaxBodySize != "64K" {
			t.Errorf("expected 64K body limit, got %d (%s)", cfg.BodySizeBytes(), cfg.MaxBodySize)
		}
		if cfg.ReadHeaderTimeout != constants.DefaultReadHeaderTimeout || cfg.ShutdownTimeout != constants.DefaultShutdownTimeout {
			t.Errorf("expected default timeouts, got %v / %v", cfg.ReadHeaderTimeout, cfg.ShutdownTimeout)
		}
	}
}

func TestLoadConfigExampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "server-config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.BodySizeBytes() != 64*1024 {
		t.Errorf("expected 64K body limit, got %d", cfg.BodySizeBytes())
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json logging, got %q", cfg.Logging.Format)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeServerConfig(t, `address: 127.0.0.1:9000
maxBodySize: 2K
readHeaderTimeout: 2s
shutdownTimeout: 30s
logging:
  level: debug
  format: console
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != "127.0.0.1:9000" {
		t.Errorf("expected address override, got %s", cfg.Address)
	}
	if cfg.BodySizeBytes() != 2048 {
		t.Errorf("expected 2K convert body limit, got %d", cfg.BodySizeBytes())
	}
	if cfg.ReadHeaderTimeout != 2*time.Second || cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("unexpected timeouts %v / %v", cfg.ReadHeaderTimeout, cfg.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadConfigRejectsBodyLimits(t *testing.T) {
	tests := []struct {
		name string
		size string
	}{
		{"Not a size", "invalid"},
		{"Too small for a conversion request", "100"},
		{"Larger than 1M", "2M"},
		{"Gigabytes", "1G"},
		{"Negative", "-4K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeServerConfig(t, "maxBodySize: "+tt.size+"\n")
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error for maxBodySize %q", tt.size)
			}
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg, _ := LoadConfig("")

	if err := cfg.SetBodySizeBytes(0); err == nil {
		t.Error("expected error for zero limit")
	}
	if err := cfg.SetBodySizeBytes(constants.MaxBodySizeBytes + 1); err == nil {
		t.Error("expected error above 1M")
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Fatalf("rejected overrides must leave the limit unchanged, got %d", cfg.BodySizeBytes())
	}

	if err := cfg.SetBodySizeBytes(4096); err != nil {
		t.Fatalf("SetBodySizeBytes(4096) error = %v", err)
	}
	if cfg.BodySizeBytes() != 4096 || cfg.MaxBodySize != "4K" {
		t.Fatalf("expected 4K, got %d (%s)", cfg.BodySizeBytes(), cfg.MaxBodySize)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"512", 512, false},
		{"512b", 512, false},
		{"4K", 4096, false},
		{"64kb", 64 * 1024, false},
		{" 1 M ", 1 << 20, false},
		{"1MB", 1 << 20, false},
		{"", 0, true},
		{"K", 0, true},
		{"1.5K", 0, true},
		{"2M", 0, true},
		{"1GB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) = %d, expected error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Fatalf("ParseSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		300:      "300",
		1024:     "1K",
		1536:     "1536",
		64 << 10: "64K",
		1 << 20:  "1M",
	}
	for size, expected := range tests {
		if got := FormatSize(size); got != expected {
			t.Errorf("FormatSize(%d) = %q, expected %q", size, got, expected)
		}
	}
}
