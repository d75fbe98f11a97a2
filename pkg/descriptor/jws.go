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

package descriptor

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// DefaultTTL is the validity window stamped on signed descriptors when
// the Signer is not configured otherwise.
const DefaultTTL = 24 * time.Hour

// SigningMethodES256K adapts secp256k1 signing to golang-jwt. Sign
// expects a crypto.KeyPair; Verify expects the 33-byte compressed
// public key taken from the issuer's DID document.
type SigningMethodES256K struct{}

// ES256K is the shared ES256K signing method instance.
var ES256K = &SigningMethodES256K{}

func init() {
	jwt.RegisterSigningMethod(ES256K.Alg(), func() jwt.SigningMethod { return ES256K })
}

// Alg returns the JWS algorithm name.
func (m *SigningMethodES256K) Alg() string {
	return string(crypto.AlgorithmES256K)
}

// Sign signs the JWS signing input with a secp256k1 key pair.
func (m *SigningMethodES256K) Sign(signingString string, key interface{}) ([]byte, error) {
	kp, ok := key.(crypto.KeyPair)
	if !ok {
		return nil, jwt.ErrInvalidKeyType
	}
	if kp.Algorithm() != crypto.AlgorithmES256K {
		return nil, fmt.Errorf("%w: key pair uses %s", jwt.ErrInvalidKeyType, kp.Algorithm())
	}
	return kp.Sign([]byte(signingString))
}

// Verify checks a 64-byte R||S signature against a compressed public key.
func (m *SigningMethodES256K) Verify(signingString string, sig []byte, key interface{}) error {
	pub, ok := key.([]byte)
	if !ok {
		return jwt.ErrInvalidKeyType
	}
	valid, err := crypto.Verify(crypto.AlgorithmES256K, pub, []byte(signingString), sig)
	if err != nil {
		return err
	}
	if !valid {
		return jwt.ErrSignatureInvalid
	}
	return nil
}

// claims is the JWT claims set carried by a signed descriptor. The
// digest binds the descriptor copy in the payload so tampering is
// detectable even by consumers that re-serialize it.
type claims struct {
	jwt.RegisteredClaims
	Descriptor *Descriptor `json:"descriptor"`
	Digest     string      `json:"descriptorDigest"`
}

// digest hashes the canonical JSON form of a descriptor.
func digest(d *Descriptor) (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// Signer signs descriptors into JWS compact tokens and verifies tokens
// received from peers by resolving the issuer's DID document.
type Signer struct {
	registry *did.Registry
	resolver did.Resolver
	ttl      time.Duration
	now      func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithTTL overrides the validity window stamped on signed descriptors.
func WithTTL(ttl time.Duration) SignerOption {
	return func(s *Signer) {
		s.ttl = ttl
	}
}

// WithClock substitutes the time source used for iat/exp stamping and
// expiry checks.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// WithRegistry substitutes the DID method registry consulted before
// resolution.
func WithRegistry(reg *did.Registry) SignerOption {
	return func(s *Signer) {
		s.registry = reg
	}
}

// NewSigner creates a Signer that verifies tokens against documents
// from resolver.
func NewSigner(resolver did.Resolver, opts ...SignerOption) (*Signer, error) {
	if resolver == nil {
		return nil, fmt.Errorf("descriptor: resolver cannot be nil")
	}
	s := &Signer{
		registry: did.DefaultRegistry(),
		resolver: resolver,
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl <= 0 {
		return nil, fmt.Errorf("descriptor: ttl must be positive")
	}
	return s, nil
}

// Sign validates desc, stamps issuance and expiry claims, and returns
// the JWS compact token. vmRef names the verification method in the
// signer's DID document that peers will use to verify; it may be a
// bare fragment ("#key-1") or an absolute reference.
func (s *Signer) Sign(ctx context.Context, desc *Descriptor, keyPair crypto.KeyPair, vmRef string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}
	if desc == nil {
		return "", fmt.Errorf("descriptor cannot be nil")
	}
	if keyPair == nil {
		return "", fmt.Errorf("keyPair cannot be nil")
	}
	if vmRef == "" {
		return "", fmt.Errorf("verification method reference cannot be empty")
	}
	if err := desc.Validate(); err != nil {
		return "", err
	}

	dig, err := digest(desc)
	if err != nil {
		return "", fmt.Errorf("failed to hash descriptor: %w", err)
	}

	now := s.now()
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    string(desc.DID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Descriptor: desc,
		Digest:     dig,
	}

	var (
		method jwt.SigningMethod
		key    interface{}
	)
	switch keyPair.Algorithm() {
	case crypto.AlgorithmES256K:
		method, key = ES256K, keyPair
	case crypto.AlgorithmEdDSA:
		method, key = jwt.SigningMethodEdDSA, ed25519.PrivateKey(keyPair.PrivateKey())
	default:
		return "", fmt.Errorf("%w: %s", crypto.ErrUnsupportedAlgorithm, keyPair.Algorithm())
	}

	token := jwt.NewWithClaims(method, c)
	token.Header["kid"] = keyID(desc.DID, vmRef)

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign descriptor: %w", err)
	}
	return signed, nil
}

// Verify parses and verifies a signed descriptor token. The issuer's
// DID document is resolved and the verification method named by the
// token's kid header supplies the public key. The embedded descriptor
// is returned once the signature, expiry, digest, and issuer checks
// all pass.
func (s *Signer) Verify(ctx context.Context, token string) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	c := &claims{}
	if _, err := jwt.ParseWithClaims(token, c, s.keyFor(ctx),
		jwt.WithValidMethods([]string{string(crypto.AlgorithmEdDSA), string(crypto.AlgorithmES256K)}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
	); err != nil {
		return nil, fmt.Errorf("descriptor verification failed: %w", err)
	}

	if c.Descriptor == nil {
		return nil, errors.New("descriptor verification failed: token carries no descriptor")
	}
	if c.Issuer != string(c.Descriptor.DID) {
		return nil, fmt.Errorf("descriptor verification failed: issuer %s does not match descriptor DID %s", c.Issuer, c.Descriptor.DID)
	}
	dig, err := digest(c.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("failed to hash descriptor: %w", err)
	}
	if dig != c.Digest {
		return nil, errors.New("descriptor verification failed: digest mismatch")
	}
	if err := c.Descriptor.Validate(); err != nil {
		return nil, err
	}
	return c.Descriptor, nil
}

// keyFor builds the key lookup callback for token parsing. It resolves
// the issuer's DID document and returns the public key named by the
// token's kid header, in the form the signing method expects.
func (s *Signer) keyFor(ctx context.Context) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		c, ok := token.Claims.(*claims)
		if !ok || c.Issuer == "" {
			return nil, errors.New("token carries no issuer")
		}
		issuer := did.AgentDID(c.Issuer)
		if err := issuer.Validate(); err != nil {
			return nil, err
		}
		if _, err := s.registry.ResolveHandler(issuer); err != nil {
			return nil, err
		}

		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token carries no kid header")
		}

		doc, err := s.resolver.Resolve(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", issuer, err)
		}
		vm, err := doc.FindVerificationMethod(kid)
		if err != nil {
			return nil, err
		}
		key, alg, err := vm.PublicKey()
		if err != nil {
			return nil, err
		}
		if string(alg) != token.Method.Alg() {
			return nil, fmt.Errorf("key algorithm %s does not match token algorithm %s", alg, token.Method.Alg())
		}
		if alg == crypto.AlgorithmEdDSA {
			return ed25519.PublicKey(key), nil
		}
		return key, nil
	}
}

// keyID produces the absolute verification method reference carried in
// the JWS kid header.
func keyID(d did.AgentDID, vmRef string) string {
	if strings.HasPrefix(vmRef, "#") {
		return string(d) + vmRef
	}
	return vmRef
}
