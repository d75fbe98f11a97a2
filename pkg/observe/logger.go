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
	"io"
	"log/slog"
	"os"
)

// LoggerConfig selects the output format and verbosity of a logger
// built by NewLogger.
type LoggerConfig struct {
	// Level is the minimum level to emit. Defaults to slog.LevelInfo.
	Level slog.Leveler

	// JSON switches from human-readable text to JSON records.
	JSON bool

	// Output overrides the destination. Defaults to os.Stderr.
	Output io.Writer
}

// NewLogger builds a structured logger with the "component" attribute
// convention used throughout this module. Pass the result to the
// package constructors that accept a *slog.Logger.
func NewLogger(cfg LoggerConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h)
}

// NopLogger returns a logger that discards every record. Constructors
// fall back to it when no logger is supplied.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
