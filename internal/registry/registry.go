// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package registry supplies the set of databases the recorder may target.
// Every implementation answers from its source at call time; nothing is cached.
package registry

import (
	"context"
	"slices"
	"strings"

	"github.com/ManuGH/recorderctl/internal/catalog"
	"github.com/ManuGH/recorderctl/internal/recorder"
)

// CatalogRegistry lists the databases of a catalog file, re-reading it on every call.
type CatalogRegistry struct {
	path       string
	preferUnix bool
}

// NewCatalog returns a registry backed by the catalog at path.
func NewCatalog(path string, preferUnix bool) *CatalogRegistry {
	return &CatalogRegistry{path: path, preferUnix: preferUnix}
}

// Path returns the catalog file location.
func (r *CatalogRegistry) Path() string {
	return r.path
}

// ListDatabases returns the catalog's database names, sorted.
func (r *CatalogRegistry) ListDatabases(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := catalog.Load(r.path)
	if err != nil {
		return nil, err
	}
	return c.Names(), nil
}

// Resolve returns the connection target of a database from the current catalog.
func (r *CatalogRegistry) Resolve(ctx context.Context, database string) (catalog.Endpoint, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Endpoint{}, err
	}
	c, err := catalog.Load(r.path)
	if err != nil {
		return catalog.Endpoint{}, err
	}
	return c.Endpoint(database, r.preferUnix)
}

// Static is a fixed list of databases taken from configuration.
type Static struct {
	names []string
}

// NewStatic returns a registry over names. Blank entries are dropped.
func NewStatic(names ...string) *Static {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	slices.Sort(clean)
	return &Static{names: slices.Compact(clean)}
}

// ListDatabases returns a copy of the configured names.
func (s *Static) ListDatabases(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.names), nil
}

// Func adapts a plain function to recorder.Registry.
type Func func(ctx context.Context) ([]string, error)

// ListDatabases calls f.
func (f Func) ListDatabases(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// New picks the catalog registry when a catalog path is configured and the
// static list otherwise.
func New(catalogPath string, static []string, preferUnix bool) recorder.Registry {
	if strings.TrimSpace(catalogPath) != "" {
		return NewCatalog(catalogPath, preferUnix)
	}
	return NewStatic(static...)
}

var (
	_ recorder.Registry = (*CatalogRegistry)(nil)
	_ recorder.Registry = (*Static)(nil)
	_ recorder.Registry = Func(nil)
)
