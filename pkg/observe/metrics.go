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

package observe

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/agentmesh-project/agentauth-go"

// Metrics bundles the OpenTelemetry instruments emitted by the
// authentication pipeline. A nil *Metrics is valid and records nothing,
// so callers never need to branch on whether metrics are enabled.
type Metrics struct {
	authAttempts    metric.Int64Counter
	verifyDuration  metric.Float64Histogram
	sessionsActive  metric.Int64UpDownCounter
	resolverLookups metric.Int64Counter
}

// NewMetrics creates the instrument set on the given provider. Use the
// global otel.GetMeterProvider() provider unless tests need isolation.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)

	attempts, err := meter.Int64Counter("agentauth.attempts",
		metric.WithDescription("Authentication attempts by outcome and rejection reason"))
	if err != nil {
		return nil, fmt.Errorf("observe: attempts counter: %w", err)
	}
	duration, err := meter.Float64Histogram("agentauth.verify.duration",
		metric.WithDescription("Signature verification latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("observe: verify duration histogram: %w", err)
	}
	active, err := meter.Int64UpDownCounter("agentauth.sessions.active",
		metric.WithDescription("Sessions currently issued and unexpired"))
	if err != nil {
		return nil, fmt.Errorf("observe: active sessions counter: %w", err)
	}
	lookups, err := meter.Int64Counter("agentauth.resolver.lookups",
		metric.WithDescription("DID document resolutions by method and outcome"))
	if err != nil {
		return nil, fmt.Errorf("observe: resolver lookups counter: %w", err)
	}

	return &Metrics{
		authAttempts:    attempts,
		verifyDuration:  duration,
		sessionsActive:  active,
		resolverLookups: lookups,
	}, nil
}

// RecordAttempt counts one authentication attempt. The reason attribute
// is empty for accepted requests.
func (m *Metrics) RecordAttempt(ctx context.Context, accepted bool, reason string) {
	if m == nil {
		return
	}
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	m.authAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("reason", reason),
	))
}

// RecordVerify records one signature verification and its latency.
func (m *Metrics) RecordVerify(ctx context.Context, algorithm string, d time.Duration) {
	if m == nil {
		return
	}
	m.verifyDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("algorithm", algorithm),
	))
}

// AddActiveSessions moves the active-session gauge by delta.
func (m *Metrics) AddActiveSessions(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.sessionsActive.Add(ctx, delta)
}

// RecordResolve counts one DID document resolution.
func (m *Metrics) RecordResolve(ctx context.Context, method string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.resolverLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
}
