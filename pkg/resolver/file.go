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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentmesh-project/agentauth-go/pkg/did"
)

// File resolves DIDs from *.json documents in a directory, indexed by
// the "id" field of each document. It is intended for development
// setups and fixtures rather than production resolution.
type File struct {
	dir    string
	static *Static
}

var _ did.Resolver = (*File)(nil)

// NewFile loads every *.json document under dir. Files that are not
// valid DID documents fail the load; call Reload to pick up changes.
func NewFile(dir string) (*File, error) {
	f := &File{dir: dir, static: NewStatic()}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads the directory, replacing the loaded set.
func (f *File) Reload() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("resolver: read dir: %w", err)
	}

	loaded := NewStatic()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(f.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("resolver: read %s: %w", path, err)
		}
		doc, err := did.ParseDocument(raw)
		if err != nil {
			return fmt.Errorf("resolver: parse %s: %w", path, err)
		}
		loaded.Add(doc)
	}

	f.static.mu.Lock()
	f.static.docs = loaded.docs
	f.static.mu.Unlock()
	return nil
}

// Resolve returns the loaded document or did.ErrDocumentNotFound.
func (f *File) Resolve(ctx context.Context, d did.AgentDID) (*did.Document, error) {
	return f.static.Resolve(ctx, d)
}
