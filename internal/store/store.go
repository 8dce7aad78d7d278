// Package store persists provider records.
//
// Two engines implement Store: SQLiteStore keeps records in an embedded
// SQLite database file and MemoryStore keeps them in process memory. Both
// assign ids that increase monotonically over the life of the store and are
// never handed out twice, even after deletes or a Clear.
package store

import (
	"context"
	"fmt"

	"manoscerca.app/internal/models"
)

// Engine names accepted by Open.
const (
	EngineSQLite = "sqlite"
	EngineMemory = "memory"
)

// Store is the persistence contract for provider records.
//
// The store does not validate records. Callers are expected to run the
// import validator before Add.
type Store interface {
	// Add inserts p under a freshly assigned id and returns that id.
	// Any id already set on p is ignored.
	Add(ctx context.Context, p models.Provider) (int64, error)
	// GetAll returns every record in insertion order.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id int64) (models.Provider, error)
	// Update inserts or replaces the record with p.ID.
	Update(ctx context.Context, p models.Provider) error
	// Delete removes the record with the given id. Missing ids are not an error.
	Delete(ctx context.Context, id int64) error
	// Clear removes every record.
	Clear(ctx context.Context) error
	Close() error
}

// Open constructs the engine named by engine. path is only used by the
// SQLite engine.
func Open(ctx context.Context, engine, path string) (Store, error) {
	switch engine {
	case EngineSQLite, "":
		return OpenSQLite(ctx, path)
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, unavailable(fmt.Errorf("unknown storage engine %q", engine))
	}
}
