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

package header

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// Wire parameters appear in this order so that encoding is deterministic.
var paramOrder = []string{
	paramDID,
	paramTargetDID,
	paramVerificationMethod,
	paramNonce,
	paramTimestamp,
	paramAlgorithm,
	paramSignature,
}

// SignatureBase builds the canonical byte string covered by the header
// signature. Both the signing and the verifying side must derive it from
// the same request components. The HTTP method is uppercased; the
// timestamp is truncated to whole seconds and rendered in UTC.
func SignatureBase(method, targetURI string, caller, target did.AgentDID, nonce string, ts time.Time) []byte {
	var b bytes.Buffer
	writeComponent(&b, "@method", strings.ToUpper(method))
	writeComponent(&b, "@target-uri", targetURI)
	writeComponent(&b, "@did", string(caller))
	writeComponent(&b, "@target-did", string(target))
	writeComponent(&b, "@nonce", nonce)
	b.WriteString(fmt.Sprintf("%q: %s", "@created", formatTimestamp(ts)))
	return b.Bytes()
}

func writeComponent(b *bytes.Buffer, name, value string) {
	fmt.Fprintf(b, "%q: %s\n", name, value)
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// Sign builds a complete Authorization for a request. The timestamp is
// truncated to whole seconds before signing so that the signed base and
// the encoded wire value agree exactly.
func Sign(method, targetURI string, caller, target did.AgentDID, vmRef, nonce string, ts time.Time, kp crypto.KeyPair) (*Authorization, error) {
	if kp == nil {
		return nil, fmt.Errorf("header: nil key pair")
	}
	if nonce == "" {
		return nil, fmt.Errorf("header: empty nonce")
	}
	if vmRef == "" {
		return nil, fmt.Errorf("header: empty verification method reference")
	}
	if err := caller.Validate(); err != nil {
		return nil, fmt.Errorf("header: caller: %w", err)
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("header: target: %w", err)
	}

	ts = ts.UTC().Truncate(time.Second)
	base := SignatureBase(method, targetURI, caller, target, nonce, ts)
	sig, err := kp.Sign(base)
	if err != nil {
		return nil, fmt.Errorf("header: sign: %w", err)
	}
	return &Authorization{
		CallerDID:          caller,
		TargetDID:          target,
		VerificationMethod: vmRef,
		Nonce:              nonce,
		Timestamp:          ts,
		Algorithm:          kp.Algorithm(),
		Signature:          sig,
	}, nil
}

// Encode serializes the Authorization into a header value:
//
//	DIDAuth did="...", target_did="...", verification_method="...",
//	nonce="...", timestamp="...", alg="...", signature="..."
//
// Parameter values are percent-escaped, so Decode(Encode(a)) recovers a
// for every valid input.
func (a *Authorization) Encode() string {
	values := map[string]string{
		paramDID:                string(a.CallerDID),
		paramTargetDID:          string(a.TargetDID),
		paramVerificationMethod: a.VerificationMethod,
		paramNonce:              a.Nonce,
		paramTimestamp:          formatTimestamp(a.Timestamp),
		paramAlgorithm:          string(a.Algorithm),
		paramSignature:          base64.RawURLEncoding.EncodeToString(a.Signature),
	}

	parts := make([]string, 0, len(paramOrder))
	for _, name := range paramOrder {
		parts = append(parts, name+`="`+escapeParam(values[name])+`"`)
	}
	return SchemeDIDAuth + " " + strings.Join(parts, ", ")
}

// Decode parses a DIDAuth header value. Parsing is strict: every
// parameter is required exactly once, unknown parameters are rejected,
// and the timestamp must be valid RFC 3339. An unsupported algorithm
// tag is reported through crypto.ErrUnsupportedAlgorithm so callers can
// distinguish it from structural damage.
func Decode(value string) (*Authorization, error) {
	rest, ok := strings.CutPrefix(value, SchemeDIDAuth+" ")
	if !ok {
		return nil, fmt.Errorf("%w: missing %s scheme", ErrMalformedHeader, SchemeDIDAuth)
	}

	params := make(map[string]string, len(paramOrder))
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty parameter", ErrMalformedHeader)
		}
		name, quoted, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("%w: parameter %q has no value", ErrMalformedHeader, part)
		}
		if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
			return nil, fmt.Errorf("%w: parameter %q is not quoted", ErrMalformedHeader, name)
		}
		if !knownParam(name) {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrMalformedHeader, name)
		}
		if _, dup := params[name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrMalformedHeader, name)
		}
		raw, err := unescapeParam(quoted[1 : len(quoted)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %v", ErrMalformedHeader, name, err)
		}
		params[name] = raw
	}

	for _, name := range paramOrder {
		if v, present := params[name]; !present || v == "" {
			return nil, fmt.Errorf("%w: missing parameter %q", ErrMalformedHeader, name)
		}
	}

	alg, err := crypto.ParseAlgorithm(params[paramAlgorithm])
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, params[paramTimestamp])
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp %q", ErrMalformedHeader, params[paramTimestamp])
	}
	sig, err := base64.RawURLEncoding.DecodeString(params[paramSignature])
	if err != nil {
		return nil, fmt.Errorf("%w: bad signature encoding", ErrMalformedHeader)
	}

	a := &Authorization{
		CallerDID:          did.AgentDID(params[paramDID]),
		TargetDID:          did.AgentDID(params[paramTargetDID]),
		VerificationMethod: params[paramVerificationMethod],
		Nonce:              params[paramNonce],
		Timestamp:          ts.UTC(),
		Algorithm:          alg,
		Signature:          sig,
	}
	if err := a.CallerDID.Validate(); err != nil {
		return nil, fmt.Errorf("%w: caller %v", ErrMalformedHeader, err)
	}
	if err := a.TargetDID.Validate(); err != nil {
		return nil, fmt.Errorf("%w: target %v", ErrMalformedHeader, err)
	}
	return a, nil
}

func knownParam(name string) bool {
	for _, p := range paramOrder {
		if p == name {
			return true
		}
	}
	return false
}

// escapeParam percent-escapes the characters that would break the
// quoted-parameter wire syntax: the escape character itself, quotes,
// backslashes, commas, spaces, and control bytes.
func escapeParam(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscape(c) {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func needsEscape(c byte) bool {
	switch c {
	case '%', '"', '\\', ',', ' ':
		return true
	}
	return c < 0x20 || c == 0x7f
}

func unescapeParam(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("truncated escape")
		}
		hi, okHi := unhex(s[i+1])
		lo, okLo := unhex(s[i+2])
		if !okHi || !okLo {
			return "", fmt.Errorf("invalid escape %q", s[i:i+3])
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
