// Package config loads builder settings from the environment and lets
// command-line flags override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// TestTarget selects where "add test" attaches assumption tests.
type TestTarget string

const (
	// TestTargetLatest attaches to the most recently selected solution.
	TestTargetLatest TestTarget = "latest"
	// TestTargetAll attaches one copy under every selected solution.
	TestTargetAll TestTarget = "all"
)

// Valid reports whether t is a known mode.
func (t TestTarget) Valid() bool {
	return t == TestTargetLatest || t == TestTargetAll
}

// Config holds all runtime settings.
type Config struct {
	StrictKinds   bool
	TestTarget    TestTarget
	LogUseCases   bool
	LogFile       string
	HistoryFile   string
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
// Kind pairing is validated and use-case logging is off.
func DefaultConfig() Config {
	return Config{
		StrictKinds:   true,
		TestTarget:    TestTargetLatest,
		LogUseCases:   false,
		HistoryFile:   defaultHistoryFile(),
		WatchDebounce: 200 * time.Millisecond,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ost", "history")
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset or malformed values.
func LoadConfig() Config {
	return loadFrom(os.Getenv)
}

func loadFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := getenv("OST_STRICT_KINDS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictKinds = b
		}
	}
	if v := getenv("OST_TEST_TARGET"); v != "" {
		if t := TestTarget(v); t.Valid() {
			cfg.TestTarget = t
		}
	}
	if v := getenv("OST_LOG_USECASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := getenv("OST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("OST_HISTORY_FILE"); v != "" {
		cfg.HistoryFile = v
	}
	if v := getenv("OST_WATCH_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.WatchDebounce = time.Duration(n) * time.Millisecond
		}
	}

	return cfg
}

// BindFlags registers persistent flags whose defaults come from cfg, so an
// explicit flag wins over the environment.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.StrictKinds, "strict", cfg.StrictKinds, "Reject nodes whose kind does not fit under the parent")
	fs.Var(&testTargetValue{target: &cfg.TestTarget}, "test-target", "Where 'add test' attaches: latest|all")
	fs.BoolVar(&cfg.LogUseCases, "log-usecases", cfg.LogUseCases, "Log every builder operation")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write use-case logs to this file instead of stderr")
	fs.StringVar(&cfg.HistoryFile, "history-file", cfg.HistoryFile, "Command bar history file (empty disables)")
	fs.DurationVar(&cfg.WatchDebounce, "debounce", cfg.WatchDebounce, "Minimum gap between watch replays")
}

// testTargetValue adapts TestTarget to pflag.Value with validation.
type testTargetValue struct {
	target *TestTarget
}

func (v *testTargetValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v *testTargetValue) Set(s string) error {
	t := TestTarget(s)
	if !t.Valid() {
		return fmt.Errorf("invalid test target %q (want latest or all)", s)
	}
	*v.target = t
	return nil
}

func (v *testTargetValue) Type() string { return "latest|all" }
