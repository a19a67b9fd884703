package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://api:8080", "-d", "/tmp/s.db", "-i", "10", "-p", "25", "-l", "debug", "-f", "zerolog"},
			expected: &Config{ServerBaseURL: "http://api:8080", DBPath: "/tmp/s.db", SessionCheckInterval: 10 * time.Second,
				PageSize: 25, LogLevel: "debug", LogFormat: "zerolog"},
		},
		{
			name:     "interval zero disables",
			args:     []string{"cmd", "-i", "0"},
			expected: &Config{},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
