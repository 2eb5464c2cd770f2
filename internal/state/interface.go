// Package state provides SQLite-based state management for sheetsmith.
package state

import (
	"io"
	"time"
)

// GenerationStore handles generation history persistence.
type GenerationStore interface {
	RecordGeneration(g *Generation) error
	GetGeneration(id string) (*Generation, error)
	ListGenerations(limit int) ([]Generation, error)
	DeleteGeneration(id string) error
	PurgeOldGenerations(olderThan time.Duration) (int64, error)
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// HistoryStore defines the interface for history persistence.
// The CLI depends on it rather than on the concrete SQLite implementation.
type HistoryStore interface {
	io.Closer
	Migrator
	GenerationStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ HistoryStore    = (*DB)(nil)
	_ Migrator        = (*DB)(nil)
	_ GenerationStore = (*DB)(nil)
)
