// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package catalog reads the database catalog that maps database names onto
// Redis instances. The catalog is usually JSON; it is decoded as YAML, which
// accepts both.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the catalog lives on a switch.
	DefaultPath = "/var/run/redis/sonic-db/database_config.json"

	DefaultSeparator = "|"
	defaultHostname  = "127.0.0.1"
	defaultPort      = 6379
)

var (
	// ErrUnknownDatabase is returned by Endpoint for names absent from the catalog.
	ErrUnknownDatabase = errors.New("database not in catalog")

	// ErrInvalidCatalog classifies structural problems found by Validate.
	ErrInvalidCatalog = errors.New("invalid database catalog")
)

// Instance is one Redis server.
type Instance struct {
	Hostname       string `yaml:"hostname"`
	Port           int    `yaml:"port"`
	UnixSocketPath string `yaml:"unix_socket_path"`
}

// Database is one logical database hosted by an Instance.
type Database struct {
	ID        int    `yaml:"id"`
	Separator string `yaml:"separator"`
	Instance  string `yaml:"instance"`
}

// Catalog is the parsed catalog file.
type Catalog struct {
	Instances map[string]Instance `yaml:"INSTANCES"`
	Databases map[string]Database `yaml:"DATABASES"`
	Version   string              `yaml:"VERSION"`
}

// Endpoint is everything a client needs to reach one database.
type Endpoint struct {
	Network   string // "tcp" or "unix"
	Addr      string
	DB        int
	Separator string
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	path = filepath.Clean(path)
	// #nosec G304 -- the catalog path is provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog content.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every database references a known instance and has a
// usable id. Missing separators are filled with DefaultSeparator.
func (c *Catalog) Validate() error {
	for _, name := range c.Names() {
		db := c.Databases[name]
		if db.ID < 0 {
			return fmt.Errorf("%w: database %s has negative id %d", ErrInvalidCatalog, name, db.ID)
		}
		if _, ok := c.Instances[db.Instance]; !ok {
			return fmt.Errorf("%w: database %s references unknown instance %q", ErrInvalidCatalog, name, db.Instance)
		}
		if db.Separator == "" {
			db.Separator = DefaultSeparator
			c.Databases[name] = db
		}
	}
	return nil
}

// Names returns the database names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Databases))
	for name := range c.Databases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Endpoint resolves name to a connection target. With preferUnix the instance's
// unix socket is used when it has one.
func (c *Catalog) Endpoint(name string, preferUnix bool) (Endpoint, error) {
	db, ok := c.Databases[name]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrUnknownDatabase, name)
	}
	inst := c.Instances[db.Instance]

	sep := db.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	if preferUnix && inst.UnixSocketPath != "" {
		return Endpoint{Network: "unix", Addr: inst.UnixSocketPath, DB: db.ID, Separator: sep}, nil
	}

	host := inst.Hostname
	if host == "" {
		host = defaultHostname
	}
	port := inst.Port
	if port == 0 {
		port = defaultPort
	}
	return Endpoint{
		Network:   "tcp",
		Addr:      net.JoinHostPort(host, strconv.Itoa(port)),
		DB:        db.ID,
		Separator: sep,
	}, nil
}
