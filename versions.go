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

// Package agentauth provides version information for agentauth-go.
package agentauth

const (
	// Version is the current version of agentauth-go
	Version = "0.4.0"

	// WireVersion is the version of the DIDAuth Authorization header
	// wire contract this library produces and accepts
	WireVersion = "1"

	// MinWireVersion is the oldest wire contract version this library
	// still accepts from peers
	MinWireVersion = "1"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	AgentAuthVersion string
	WireVersion      string
	MinWireVersion   string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		AgentAuthVersion: Version,
		WireVersion:      WireVersion,
		MinWireVersion:   MinWireVersion,
	}
}
