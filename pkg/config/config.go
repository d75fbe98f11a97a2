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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values mirroring the reference network deployment.
const (
	DefaultClockSkew     = 300 * time.Second
	DefaultNonceWindow   = 360 * time.Second
	DefaultSessionTTL    = 3600 * time.Second
	DefaultSweepInterval = 60 * time.Second
	DefaultSweepGrace    = 60 * time.Second
	DefaultResolveTO     = 5 * time.Second
	DefaultCacheTTL      = 300 * time.Second
)

// Duration is a time.Duration that unmarshals from YAML scalars in
// either Go duration syntax ("300s", "5m") or bare integer seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: duration must be a scalar")
	}
	if secs, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// Config is the startup configuration. It is loaded once and passed to
// components at construction; nothing reads it mid-request.
type Config struct {
	Auth     Auth     `yaml:"auth"`
	Session  Session  `yaml:"session"`
	Resolver Resolver `yaml:"resolver"`

	// Methods lists the enabled DID methods.
	Methods []string `yaml:"methods"`
}

// Auth configures the authentication manager.
type Auth struct {
	// ClockSkew is the accepted timestamp distance, inclusive on both
	// sides.
	ClockSkew Duration `yaml:"clock_skew"`

	// NonceWindow is the replay-tracking horizon.
	NonceWindow Duration `yaml:"nonce_window"`

	// Mutual attaches a responder proof to accepted requests.
	Mutual bool `yaml:"mutual"`
}

// Session configures the session manager.
type Session struct {
	TTL Duration `yaml:"ttl"`

	// SweepInterval is the background cleanup cadence; zero disables
	// the sweeper.
	SweepInterval Duration `yaml:"sweep_interval"`

	// SweepGrace keeps expired and revoked sessions observable for
	// this long before the sweeper removes them.
	SweepGrace Duration `yaml:"sweep_grace"`
}

// Resolver configures DID document resolution.
type Resolver struct {
	Timeout  Duration `yaml:"timeout"`
	CacheTTL Duration `yaml:"cache_ttl"`

	// AllowInsecure fetches did:wba documents over plain HTTP.
	// Development only.
	AllowInsecure bool `yaml:"allow_insecure"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Auth: Auth{
			ClockSkew:   Duration(DefaultClockSkew),
			NonceWindow: Duration(DefaultNonceWindow),
		},
		Session: Session{
			TTL:           Duration(DefaultSessionTTL),
			SweepInterval: Duration(DefaultSweepInterval),
			SweepGrace:    Duration(DefaultSweepGrace),
		},
		Resolver: Resolver{
			Timeout:  Duration(DefaultResolveTO),
			CacheTTL: Duration(DefaultCacheTTL),
		},
		Methods: []string{"wba", "key", "example"},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error
// so typos surface at startup instead of silently keeping a default.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML bytes over the defaults.
func Parse(raw []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var knownMethods = map[string]struct{}{
	"wba":     {},
	"key":     {},
	"example": {},
}

// Validate checks durations and method names.
func (c *Config) Validate() error {
	if c.Auth.ClockSkew <= 0 {
		return fmt.Errorf("config: auth.clock_skew must be positive, got %s", c.Auth.ClockSkew)
	}
	if c.Auth.NonceWindow <= 0 {
		return fmt.Errorf("config: auth.nonce_window must be positive, got %s", c.Auth.NonceWindow)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session.ttl must be positive, got %s", c.Session.TTL)
	}
	if c.Session.SweepInterval < 0 {
		return fmt.Errorf("config: session.sweep_interval must not be negative, got %s", c.Session.SweepInterval)
	}
	if c.Session.SweepGrace < 0 {
		return fmt.Errorf("config: session.sweep_grace must not be negative, got %s", c.Session.SweepGrace)
	}
	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("config: resolver.timeout must be positive, got %s", c.Resolver.Timeout)
	}
	if c.Resolver.CacheTTL < 0 {
		return fmt.Errorf("config: resolver.cache_ttl must not be negative, got %s", c.Resolver.CacheTTL)
	}
	if len(c.Methods) == 0 {
		return fmt.Errorf("config: at least one DID method must be enabled")
	}
	for _, m := range c.Methods {
		if _, ok := knownMethods[m]; !ok {
			return fmt.Errorf("config: unknown DID method %q", m)
		}
	}
	return nil
}
