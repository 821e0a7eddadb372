package taskflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestTestConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := TestConfig()
	require.NoError(t, cfg.Validate())
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	SetDefaults(&cfg)

	defaults := DefaultConfig()
	require.Equal(t, defaults, cfg)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := Config{
		DragThreshold:   12,
		MutationTimeout: 3 * time.Second,
	}
	SetDefaults(&cfg)

	require.InDelta(t, 12.0, cfg.DragThreshold, 0)
	require.Equal(t, 3*time.Second, cfg.MutationTimeout)
	require.Equal(t, DefaultConfig().FetchTimeout, cfg.FetchTimeout)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative drag threshold",
			mutate:  func(c *Config) { c.DragThreshold = -1 },
			wantErr: "DragThreshold",
		},
		{
			name:    "zero mutation timeout",
			mutate:  func(c *Config) { c.MutationTimeout = -time.Second },
			wantErr: "MutationTimeout",
		},
		{
			name:    "zero fetch timeout",
			mutate:  func(c *Config) { c.FetchTimeout = -time.Second },
			wantErr: "FetchTimeout",
		},
		{
			name:    "negative refetch debounce",
			mutate:  func(c *Config) { c.RefetchDebounce = -time.Millisecond },
			wantErr: "RefetchDebounce",
		},
		{
			name: "liveness window too short",
			mutate: func(c *Config) {
				c.HeartbeatInterval = 10 * time.Second
				c.LivenessWindow = 15 * time.Second
			},
			wantErr: "LivenessWindow",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
