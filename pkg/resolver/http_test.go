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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// wbaDID builds the did:wba identifier served by a httptest server,
// percent-encoding the port separator.
func wbaDID(srv *httptest.Server, segments ...string) did.AgentDID {
	host := strings.TrimPrefix(srv.URL, "http://")
	id := "did:wba:" + strings.ReplaceAll(host, ":", "%3A")
	if len(segments) > 0 {
		id += ":" + strings.Join(segments, ":")
	}
	return did.AgentDID(id)
}

// documentServer serves one DID document and records fetch traffic.
type documentServer struct {
	srv   *httptest.Server
	d     did.AgentDID
	count atomic.Int64

	mu    sync.Mutex
	doc   *did.Document
	path  string
	delay time.Duration
}

func newDocumentServer(t *testing.T, segments ...string) *documentServer {
	t.Helper()
	ds := &documentServer{}
	ds.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.count.Add(1)
		ds.mu.Lock()
		ds.path = r.URL.Path
		doc := ds.doc
		delay := ds.delay
		ds.mu.Unlock()

		if delay > 0 {
			time.Sleep(delay)
		}
		if doc == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(ds.srv.Close)

	ds.d = wbaDID(ds.srv, segments...)
	doc, _ := testKeyDocument(t, ds.d)
	ds.setDoc(doc)
	return ds
}

func (ds *documentServer) setDoc(doc *did.Document) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.doc = doc
}

func (ds *documentServer) setDelay(d time.Duration) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.delay = d
}

func (ds *documentServer) lastPath() string {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.path
}

// Test resolution of a pathless DID from the well-known location.
func TestHTTP_Resolve_WellKnown(t *testing.T) {
	ds := newDocumentServer(t)
	r := NewHTTP(WithInsecure(), WithCacheTTL(0))

	doc, err := r.Resolve(context.Background(), ds.d)
	require.NoError(t, err)
	assert.Equal(t, ds.d, doc.ID)
	assert.Equal(t, "/.well-known/did.json", ds.lastPath())
}

// Test that path segments map to URL segments with a did.json leaf.
func TestHTTP_Resolve_PathMapping(t *testing.T) {
	ds := newDocumentServer(t, "user", "alice")
	r := NewHTTP(WithInsecure(), WithCacheTTL(0))

	doc, err := r.Resolve(context.Background(), ds.d)
	require.NoError(t, err)
	assert.Equal(t, ds.d, doc.ID)
	assert.Equal(t, "/user/alice/did.json", ds.lastPath())
}

// Test the missing-document sentinel.
func TestHTTP_Resolve_NotFound(t *testing.T) {
	ds := newDocumentServer(t)
	ds.setDoc(nil)

	r := NewHTTP(WithInsecure(), WithCacheTTL(0))
	_, err := r.Resolve(context.Background(), ds.d)
	assert.ErrorIs(t, err, did.ErrDocumentNotFound)
}

// Test that a server error is not reported as a missing document.
func TestHTTP_Resolve_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	r := NewHTTP(WithInsecure(), WithCacheTTL(0))
	_, err := r.Resolve(context.Background(), wbaDID(srv))
	require.Error(t, err)
	assert.NotErrorIs(t, err, did.ErrDocumentNotFound)
}

// Test rejection of a document that declares a different DID than the
// one it was fetched for.
func TestHTTP_Resolve_IDMismatch(t *testing.T) {
	ds := newDocumentServer(t)
	imposter, _ := testKeyDocument(t, "did:wba:imposter.example")
	ds.setDoc(imposter)

	r := NewHTTP(WithInsecure(), WithCacheTTL(0))
	_, err := r.Resolve(context.Background(), ds.d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares id")
}

// Test cache hits, clock-driven expiry, and invalidation.
func TestHTTP_Resolve_Cache(t *testing.T) {
	ctx := context.Background()
	ds := newDocumentServer(t)

	var mu sync.Mutex
	now := time.Now()
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	r := NewHTTP(WithInsecure(), WithCacheTTL(time.Minute), WithHTTPClock(clock))

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(ctx, ds.d)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, ds.count.Load())

	// Past the TTL the document is fetched again.
	advance(2 * time.Minute)
	_, err := r.Resolve(ctx, ds.d)
	require.NoError(t, err)
	assert.EqualValues(t, 2, ds.count.Load())

	// Invalidation forces a refetch before the TTL lapses.
	r.Invalidate(ds.d)
	_, err = r.Resolve(ctx, ds.d)
	require.NoError(t, err)
	assert.EqualValues(t, 3, ds.count.Load())
}

// Test that concurrent lookups of the same DID share one fetch.
func TestHTTP_Resolve_Singleflight(t *testing.T) {
	ds := newDocumentServer(t)
	ds.setDelay(50 * time.Millisecond)

	r := NewHTTP(WithInsecure(), WithCacheTTL(0))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve(context.Background(), ds.d); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, ds.count.Load())
}

// Test that the caller's deadline surfaces as a resolution timeout even
// while the fetch is still in flight.
func TestHTTP_Resolve_Timeout(t *testing.T) {
	ds := newDocumentServer(t)
	ds.setDelay(500 * time.Millisecond)

	r := NewHTTP(WithInsecure(), WithCacheTTL(0))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Resolve(ctx, ds.d)
	assert.ErrorIs(t, err, did.ErrResolutionTimeout)
}

// Test the DID-to-URL mapping directly.
func TestHTTP_DocumentURL(t *testing.T) {
	tests := []struct {
		d        did.AgentDID
		insecure bool
		expected string
	}{
		{"did:wba:example.com", false, "https://example.com/.well-known/did.json"},
		{"did:wba:example.com:user:alice", false, "https://example.com/user/alice/did.json"},
		{"did:wba:example.com%3A8800:svc", false, "https://example.com:8800/svc/did.json"},
		{"did:wba:localhost%3A9000", true, "http://localhost:9000/.well-known/did.json"},
	}

	for _, tt := range tests {
		t.Run(string(tt.d), func(t *testing.T) {
			opts := []HTTPOption{}
			if tt.insecure {
				opts = append(opts, WithInsecure())
			}
			u, err := NewHTTP(opts...).documentURL(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u)
		})
	}

	_, err := NewHTTP().documentURL("did:key:z6Mk")
	assert.ErrorIs(t, err, did.ErrInvalidDID)
}
