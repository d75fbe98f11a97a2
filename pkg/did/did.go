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

package did

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// AgentDID is a decentralized identifier of a network participant, e.g.
// "did:wba:example.com:agents:alice" or "did:key:z6Mk...".
type AgentDID string

// Method name constants for the handlers shipped with this module.
const (
	// MethodWBA identifies web-based-agent DIDs whose documents are
	// served over HTTPS from the DID's domain.
	MethodWBA = "wba"

	// MethodKey identifies self-certifying did:key identifiers that embed
	// the public key in the DID itself.
	MethodKey = "key"

	// MethodExample identifies the static-document method used by tests
	// and demos.
	MethodExample = "example"
)

// ErrInvalidDID is returned for strings that do not have the
// did:<method>:<method-specific-id> shape.
var ErrInvalidDID = errors.New("did: invalid DID syntax")

var didPattern = regexp.MustCompile(`^did:([a-z0-9]+):(.+)$`)

// Validate checks the generic did:<method>:<id> syntax.
func (d AgentDID) Validate() error {
	if !didPattern.MatchString(string(d)) {
		return fmt.Errorf("%w: %q", ErrInvalidDID, string(d))
	}
	return nil
}

// Method extracts the method token, e.g. "wba" from
// "did:wba:example.com:alice". Returns "" for malformed DIDs.
func (d AgentDID) Method() string {
	m := didPattern.FindStringSubmatch(string(d))
	if m == nil {
		return ""
	}
	return m[1]
}

// MethodSpecificID returns everything after the method token. Returns ""
// for malformed DIDs.
func (d AgentDID) MethodSpecificID() string {
	m := didPattern.FindStringSubmatch(string(d))
	if m == nil {
		return ""
	}
	return m[2]
}

func (d AgentDID) String() string {
	return string(d)
}

// ParseWBA splits a wba DID into its host and path segments. The host
// segment may carry a percent-encoded port ("example.com%3A8800"). A DID
// without path segments maps to the well-known document location.
func ParseWBA(d AgentDID) (host string, path []string, err error) {
	if err := d.Validate(); err != nil {
		return "", nil, err
	}
	if d.Method() != MethodWBA {
		return "", nil, fmt.Errorf("%w: not a wba DID: %q", ErrInvalidDID, string(d))
	}
	segments := strings.Split(d.MethodSpecificID(), ":")
	host = strings.ReplaceAll(segments[0], "%3A", ":")
	if host == "" {
		return "", nil, fmt.Errorf("%w: empty host in %q", ErrInvalidDID, string(d))
	}
	for _, seg := range segments[1:] {
		if seg == "" {
			return "", nil, fmt.Errorf("%w: empty path segment in %q", ErrInvalidDID, string(d))
		}
	}
	return host, segments[1:], nil
}
