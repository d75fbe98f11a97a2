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

package agentauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionConstants(t *testing.T) {
	// Verify version constants are not empty
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, WireVersion, "WireVersion should not be empty")
	assert.NotEmpty(t, MinWireVersion, "MinWireVersion should not be empty")

	// Verify expected values
	assert.Equal(t, "0.4.0", Version)
	assert.Equal(t, "1", WireVersion)
	assert.Equal(t, "1", MinWireVersion)
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	// Verify all fields are populated
	assert.Equal(t, Version, info.AgentAuthVersion)
	assert.Equal(t, WireVersion, info.WireVersion)
	assert.Equal(t, MinWireVersion, info.MinWireVersion)
}
