package backend

import "budget/internal/store"

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the store instance and optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string

	// Supabase specific
	SupabaseURL string
	SupabaseKey string
}

// Type selects the record-store implementation.
type Type string

const (
	SQLiteBackend   Type = "sqlite"
	SupabaseBackend Type = "supabase"
	MemoryBackend   Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SupabaseBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
