// Copyright (C) 2026 AgentMesh Project
//
// This file is part of agentauth-go.
//
// agentauth-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// agentauth-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with agentauth-go.  If not, see <https://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Test that the defaults validate and carry the reference values.
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 300*time.Second, cfg.Auth.ClockSkew.Std())
	assert.Equal(t, 360*time.Second, cfg.Auth.NonceWindow.Std())
	assert.False(t, cfg.Auth.Mutual)
	assert.Equal(t, time.Hour, cfg.Session.TTL.Std())
	assert.Equal(t, []string{"wba", "key", "example"}, cfg.Methods)
}

// Test loading a file where some fields override defaults and the rest
// fall through.
func TestLoad(t *testing.T) {
	raw := `
auth:
  clock_skew: 2m
  mutual: true
session:
  ttl: 600
resolver:
  allow_insecure: true
methods: [key]
`
	path := filepath.Join(t.TempDir(), "agentauth.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Auth.ClockSkew.Std())
	assert.True(t, cfg.Auth.Mutual)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL.Std())
	assert.True(t, cfg.Resolver.AllowInsecure)
	assert.Equal(t, []string{"key"}, cfg.Methods)

	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultNonceWindow, cfg.Auth.NonceWindow.Std())
	assert.Equal(t, DefaultSweepInterval, cfg.Session.SweepInterval.Std())
	assert.Equal(t, DefaultResolveTO, cfg.Resolver.Timeout.Std())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// Test duration scalar forms.
func TestDuration_Unmarshal(t *testing.T) {
	tests := []struct {
		raw      string
		expected time.Duration
	}{
		{"clock_skew: 300s", 300 * time.Second},
		{"clock_skew: 5m", 5 * time.Minute},
		{"clock_skew: 300", 300 * time.Second},
		{"clock_skew: 1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		cfg, err := Parse([]byte("auth:\n  " + tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expected, cfg.Auth.ClockSkew.Std(), tt.raw)
	}

	_, err := Parse([]byte("auth:\n  clock_skew: fast"))
	assert.Error(t, err)
}

// Test rejection of malformed and invalid configurations.
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown key", "auth:\n  clock_skw: 300s"},
		{"negative skew", "auth:\n  clock_skew: -10s"},
		{"zero ttl", "session:\n  ttl: 0"},
		{"negative sweep", "session:\n  sweep_interval: -1s"},
		{"unknown method", "methods: [wba, carrier-pigeon]"},
		{"empty methods", "methods: []"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

// Test that a marshalled config round-trips through Parse.
func TestConfig_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Auth.ClockSkew = Duration(90 * time.Second)
	cfg.Auth.Mutual = true

	raw, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
