package config

import (
	"io"
	"testing"
	"time"
)

// Environment-dependent tests use t.Setenv and therefore must not run in
// parallel.

// TestEnvOverrideAppliedWhenFlagAbsent verifies that environment variables
// fill in values for flags not given on the command line.
func TestEnvOverrideAppliedWhenFlagAbsent(t *testing.T) {
	t.Setenv("DUPSCAN_WORKERS", "8")
	t.Setenv("DUPSCAN_STRATEGIES", "sharded")
	t.Setenv("DUPSCAN_TIMEOUT", "90s")
	t.Setenv("DUPSCAN_QUIET", "yes")

	cfg, err := ParseConfig("dupscan", nil, io.Discard, testStrategies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Strategies != "sharded" {
		t.Errorf("Strategies = %q, want sharded", cfg.Strategies)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %s, want 90s", cfg.Timeout)
	}
	if !cfg.Quiet {
		t.Error("Quiet = false, want true")
	}
}

// TestCLIFlagBeatsEnv verifies the priority CLI > environment.
func TestCLIFlagBeatsEnv(t *testing.T) {
	t.Setenv("DUPSCAN_WORKERS", "8")
	t.Setenv("DUPSCAN_THRESHOLD", "5")

	cfg, err := ParseConfig("dupscan", []string{"-workers", "2", "-threshold", "3"}, io.Discard, testStrategies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (CLI should beat env)", cfg.Workers)
	}
	if cfg.Threshold != 3 {
		t.Errorf("Threshold = %d, want 3 (CLI should beat env)", cfg.Threshold)
	}
}

// TestEnvAliasCoverage verifies that setting either alias on the command
// line suppresses the env override for both forms.
func TestEnvAliasCoverage(t *testing.T) {
	t.Setenv("DUPSCAN_VERBOSE", "true")

	cfg, err := ParseConfig("dupscan", []string{"-verbose=false"}, io.Discard, testStrategies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Verbose {
		t.Error("explicit -verbose=false should not be overridden by DUPSCAN_VERBOSE")
	}
}

// TestEnvInvalidValuesIgnored verifies that malformed env values fall back
// to the default instead of failing the parse.
func TestEnvInvalidValuesIgnored(t *testing.T) {
	t.Setenv("DUPSCAN_WORKERS", "not-a-number")
	t.Setenv("DUPSCAN_TIMEOUT", "soon")
	t.Setenv("DUPSCAN_BENCH", "-3")

	cfg, err := ParseConfig("dupscan", nil, io.Discard, testStrategies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want default 0", cfg.Workers)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want default %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Bench != 0 {
		t.Errorf("Bench = %d, want default 0", cfg.Bench)
	}
}

// TestParseBoolEnv exercises the accepted boolean spellings.
func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"TRUE", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}

// TestFlaglessTunables verifies the env-only operational knobs.
func TestFlaglessTunables(t *testing.T) {
	t.Run("server_scan_limit_default", func(t *testing.T) {
		t.Setenv("DUPSCAN_SERVER_SCAN_LIMIT", "")
		if got := ServerScanLimit(); got < 1 {
			t.Errorf("ServerScanLimit() = %d, want >= 1", got)
		}
	})

	t.Run("server_scan_limit_env", func(t *testing.T) {
		t.Setenv("DUPSCAN_SERVER_SCAN_LIMIT", "3")
		if got := ServerScanLimit(); got != 3 {
			t.Errorf("ServerScanLimit() = %d, want 3", got)
		}
	})

	t.Run("server_scan_limit_invalid", func(t *testing.T) {
		t.Setenv("DUPSCAN_SERVER_SCAN_LIMIT", "0")
		if got := ServerScanLimit(); got < 1 {
			t.Errorf("ServerScanLimit() = %d, want fallback >= 1", got)
		}
	})

	t.Run("shutdown_grace", func(t *testing.T) {
		t.Setenv("DUPSCAN_SHUTDOWN_GRACE", "2s")
		if got := ServerShutdownGrace(); got != 2*time.Second {
			t.Errorf("ServerShutdownGrace() = %s, want 2s", got)
		}
	})

	t.Run("shutdown_grace_default", func(t *testing.T) {
		t.Setenv("DUPSCAN_SHUTDOWN_GRACE", "")
		if got := ServerShutdownGrace(); got != 5*time.Second {
			t.Errorf("ServerShutdownGrace() = %s, want 5s", got)
		}
	})

	t.Run("cors_origins_default", func(t *testing.T) {
		t.Setenv("DUPSCAN_CORS_ORIGINS", "")
		got := CORSAllowedOrigins()
		if len(got) != 1 || got[0] != "*" {
			t.Errorf("CORSAllowedOrigins() = %v, want [*]", got)
		}
	})

	t.Run("cors_origins_env", func(t *testing.T) {
		t.Setenv("DUPSCAN_CORS_ORIGINS", "https://a.example, https://b.example ,")
		got := CORSAllowedOrigins()
		if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
			t.Errorf("CORSAllowedOrigins() = %v", got)
		}
	})

	t.Run("dynamic_threshold_default", func(t *testing.T) {
		t.Setenv("DUPSCAN_DYNAMIC_THRESHOLD", "")
		if !DynamicThresholdEnabled() {
			t.Error("DynamicThresholdEnabled() = false, want true by default")
		}
	})

	t.Run("dynamic_threshold_disabled", func(t *testing.T) {
		t.Setenv("DUPSCAN_DYNAMIC_THRESHOLD", "no")
		if DynamicThresholdEnabled() {
			t.Error("DynamicThresholdEnabled() = true, want false")
		}
	})
}
