package taskflow

import (
	"fmt"
	"time"
)

// Config is the configuration for the Board.
//
// All duration fields accept standard Go duration strings like "30s", "5m"
// when unmarshalled from YAML.
type Config struct {
	// DragThreshold is the pointer travel distance, in display units, that
	// promotes a press into a drag. Movement below the threshold resolves
	// as a click, never as a drag.
	// Recommended: 5.0.
	DragThreshold float64 `yaml:"dragThreshold"`

	// MutationTimeout bounds one remote mutation round trip (single
	// reassignment or bulk action). A timed-out mutation is rolled back
	// exactly like a failed one.
	// Recommended: 5 seconds.
	MutationTimeout time.Duration `yaml:"mutationTimeout"`

	// FetchTimeout bounds one canonical state fetch (initial load and
	// every invalidation-triggered refetch).
	// Recommended: 10 seconds.
	FetchTimeout time.Duration `yaml:"fetchTimeout"`

	// RefetchDebounce is the window in which duplicate invalidation
	// signals collapse into a single canonical fetch. Signals are
	// delivered at least once, so coalescing is safe.
	// Recommended: 100 milliseconds.
	RefetchDebounce time.Duration `yaml:"refetchDebounce"`

	// HeartbeatInterval is how often presence heartbeats are published.
	// Shorter intervals give faster liveness detection but increase
	// transport traffic.
	// Recommended: 10 seconds.
	HeartbeatInterval time.Duration `yaml:"heartbeatInterval"`

	// LivenessWindow is how long a participant stays present after its
	// last heartbeat. Must be greater than HeartbeatInterval.
	// Recommended: 3x HeartbeatInterval.
	LivenessWindow time.Duration `yaml:"livenessWindow"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	return Config{
		DragThreshold:     5.0,
		MutationTimeout:   5 * time.Second,
		FetchTimeout:      10 * time.Second,
		RefetchDebounce:   100 * time.Millisecond,
		HeartbeatInterval: 10 * time.Second,
		LivenessWindow:    30 * time.Second,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.DragThreshold == 0 {
		cfg.DragThreshold = defaults.DragThreshold
	}
	if cfg.MutationTimeout == 0 {
		cfg.MutationTimeout = defaults.MutationTimeout
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = defaults.FetchTimeout
	}
	if cfg.RefetchDebounce == 0 {
		cfg.RefetchDebounce = defaults.RefetchDebounce
	}
	if cfg.HeartbeatInterval == 0 {
		cfg.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if cfg.LivenessWindow == 0 {
		cfg.LivenessWindow = defaults.LivenessWindow
	}
}

// Validate checks configuration constraints and returns an error for
// invalid values.
//
// Hard Validation Rules:
//   - DragThreshold > 0 (zero would promote every click into a drag)
//   - MutationTimeout > 0 and FetchTimeout > 0 (unbounded round trips
//     would pin mutations in flight forever)
//   - RefetchDebounce >= 0
//   - LivenessWindow >= 2 * HeartbeatInterval (allow one missed heartbeat
//     before a participant flickers out of the roster)
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.DragThreshold <= 0 {
		return fmt.Errorf("DragThreshold must be > 0, got %v", cfg.DragThreshold)
	}

	if cfg.MutationTimeout <= 0 {
		return fmt.Errorf("MutationTimeout must be > 0, got %v", cfg.MutationTimeout)
	}

	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("FetchTimeout must be > 0, got %v", cfg.FetchTimeout)
	}

	if cfg.RefetchDebounce < 0 {
		return fmt.Errorf("RefetchDebounce must be >= 0, got %v", cfg.RefetchDebounce)
	}

	if cfg.LivenessWindow < 2*cfg.HeartbeatInterval {
		return fmt.Errorf(
			"LivenessWindow (%v) must be >= 2*HeartbeatInterval (%v) to allow one missed heartbeat",
			cfg.LivenessWindow, cfg.HeartbeatInterval,
		)
	}

	return nil
}

// ValidateWithWarnings checks configuration and logs warnings for
// non-recommended values.
//
// This is called after Validate() in NewBoard() to provide operator guidance.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger Logger) {
	if cfg.LivenessWindow < 3*cfg.HeartbeatInterval {
		logger.Warn(
			"LivenessWindow is below recommended minimum",
			"livenessWindow", cfg.LivenessWindow,
			"heartbeatInterval", cfg.HeartbeatInterval,
			"recommended", 3*cfg.HeartbeatInterval,
		)
	}

	if cfg.RefetchDebounce > time.Second {
		logger.Warn(
			"RefetchDebounce is very long, canonical state may lag visibly",
			"refetchDebounce", cfg.RefetchDebounce,
			"recommended", "100ms",
		)
	}
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Test timings are 10-100x faster than production defaults to enable
// rapid iteration without sacrificing test coverage. Use DefaultConfig()
// for production deployments.
//
// Returns:
//   - Config: Configuration with fast timings for tests
func TestConfig() Config {
	cfg := DefaultConfig()

	cfg.MutationTimeout = 2 * time.Second
	cfg.FetchTimeout = 2 * time.Second
	cfg.RefetchDebounce = 10 * time.Millisecond
	cfg.HeartbeatInterval = 50 * time.Millisecond
	cfg.LivenessWindow = 150 * time.Millisecond

	return cfg
}
