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

// Package observe provides the logging and metrics plumbing shared by
// the other packages: slog-based structured logging and OpenTelemetry
// instruments for authentication outcomes, verification latency,
// active sessions, and resolver traffic.
//
// Both halves are optional. Constructors that accept a *slog.Logger
// fall back to NopLogger, and every method on a nil *Metrics is a
// no-op, so instrumentation can be wired in production and left out of
// tests without conditional code.
package observe
