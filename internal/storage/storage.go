// Package storage persists the catalog, either as a JSON flat file or in SQLite.
package storage

import (
	"context"
	"fmt"
	"io"

	"bookshelf/internal/catalog"
	"bookshelf/internal/config"
)

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Backend is a catalog store that may hold resources.
type Backend interface {
	catalog.Store
	io.Closer
}

// Open picks the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.LibraryConfig) (Backend, error) {
	switch cfg.Driver {
	case DriverJSON, "":
		return NewFileStore(cfg.Path, cfg.Pretty), nil
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
