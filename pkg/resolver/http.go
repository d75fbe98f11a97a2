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

package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/observe"
)

const (
	// DefaultCacheTTL is how long a fetched document is served from
	// cache before being fetched again.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultFetchTimeout bounds a single document fetch, independent
	// of the caller's deadline, so one shared in-flight fetch cannot
	// hang every waiter.
	DefaultFetchTimeout = 10 * time.Second

	// maxDocumentSize caps the accepted document body.
	maxDocumentSize = 1 << 20

	wellKnownPath = "/.well-known/did.json"
	documentFile  = "did.json"
)

// HTTP resolves did:wba identifiers by fetching the DID document from
// the web location the DID encodes. Identical concurrent lookups are
// collapsed into one fetch and results are cached for a TTL.
type HTTP struct {
	client       *http.Client
	cacheTTL     time.Duration
	fetchTimeout time.Duration
	insecure     bool
	now          func() time.Time
	logger       *slog.Logger
	metrics      *observe.Metrics

	group singleflight.Group

	mu    sync.RWMutex
	cache map[did.AgentDID]cacheEntry
}

type cacheEntry struct {
	doc     *did.Document
	expires time.Time
}

var _ did.Resolver = (*HTTP)(nil)

// HTTPOption configures the HTTP resolver.
type HTTPOption func(*HTTP)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(r *HTTP) { r.client = c }
}

// WithCacheTTL sets how long documents are cached. Zero disables the
// cache entirely.
func WithCacheTTL(d time.Duration) HTTPOption {
	return func(r *HTTP) { r.cacheTTL = d }
}

// WithFetchTimeout bounds each underlying document fetch.
func WithFetchTimeout(d time.Duration) HTTPOption {
	return func(r *HTTP) { r.fetchTimeout = d }
}

// WithInsecure fetches documents over plain HTTP. Development only;
// anyone on the path can forge documents for a DID.
func WithInsecure() HTTPOption {
	return func(r *HTTP) { r.insecure = true }
}

// WithHTTPLogger sets the logger.
func WithHTTPLogger(l *slog.Logger) HTTPOption {
	return func(r *HTTP) { r.logger = l }
}

// WithHTTPMetrics enables instrument recording.
func WithHTTPMetrics(m *observe.Metrics) HTTPOption {
	return func(r *HTTP) { r.metrics = m }
}

// WithHTTPClock overrides the time source used for cache expiry.
func WithHTTPClock(now func() time.Time) HTTPOption {
	return func(r *HTTP) { r.now = now }
}

// NewHTTP creates a did:wba resolver. The default client carries an
// OpenTelemetry-instrumented transport.
func NewHTTP(opts ...HTTPOption) *HTTP {
	r := &HTTP{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   DefaultFetchTimeout,
		},
		cacheTTL:     DefaultCacheTTL,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
		logger:       observe.NopLogger(),
		cache:        make(map[did.AgentDID]cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches the document for a did:wba identifier. The caller's
// deadline is honored even while a shared fetch is in flight; hitting
// it reports did.ErrResolutionTimeout.
func (r *HTTP) Resolve(ctx context.Context, d did.AgentDID) (*did.Document, error) {
	if doc, ok := r.cached(d); ok {
		return doc, nil
	}

	// The fetch runs detached from the first caller's context so its
	// cancellation cannot poison the result for everyone sharing the
	// flight.
	ch := r.group.DoChan(string(d), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()
		doc, err := r.fetch(fetchCtx, d)
		r.metrics.RecordResolve(fetchCtx, did.MethodWBA, err)
		if err != nil {
			return nil, err
		}
		r.store(d, doc)
		return doc, nil
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", did.ErrResolutionTimeout, d)
		}
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*did.Document), nil
	}
}

// Invalidate drops the cached document for a DID, forcing the next
// Resolve to fetch. Useful after a verification failure that suggests
// the agent rotated its keys.
func (r *HTTP) Invalidate(d did.AgentDID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, d)
}

func (r *HTTP) cached(d did.AgentDID) (*did.Document, bool) {
	if r.cacheTTL <= 0 {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.cache[d]
	if !ok || r.now().After(entry.expires) {
		return nil, false
	}
	return entry.doc, true
}

func (r *HTTP) store(d did.AgentDID, doc *did.Document) {
	if r.cacheTTL <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[d] = cacheEntry{doc: doc, expires: r.now().Add(r.cacheTTL)}
}

func (r *HTTP) fetch(ctx context.Context, d did.AgentDID) (*did.Document, error) {
	u, err := r.documentURL(d)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("resolver: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", did.ErrResolutionTimeout, d)
		}
		return nil, fmt.Errorf("resolver: fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, fmt.Errorf("%w: %s", did.ErrDocumentNotFound, d)
	default:
		return nil, fmt.Errorf("resolver: fetch %s: unexpected status %d", u, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("resolver: read %s: %w", u, err)
	}
	if len(raw) > maxDocumentSize {
		return nil, fmt.Errorf("resolver: document at %s exceeds %d bytes", u, maxDocumentSize)
	}

	doc, err := did.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("resolver: %s: %w", u, err)
	}
	if doc.ID != d {
		return nil, fmt.Errorf("resolver: document at %s declares id %q, want %q", u, doc.ID, d)
	}

	r.logger.Debug("resolved DID document",
		"component", "resolver",
		"did", d,
		"url", u)
	return doc, nil
}

// documentURL maps a wba DID to its document location: path segments
// become URL segments with a did.json leaf, and a pathless DID uses
// the well-known location.
func (r *HTTP) documentURL(d did.AgentDID) (string, error) {
	host, segments, err := did.ParseWBA(d)
	if err != nil {
		return "", err
	}

	scheme := "https"
	if r.insecure {
		scheme = "http"
	}
	u := url.URL{Scheme: scheme, Host: host}
	if len(segments) == 0 {
		u.Path = wellKnownPath
	} else {
		u.Path = "/" + strings.Join(segments, "/") + "/" + documentFile
	}
	return u.String(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
