// Package backend selects and constructs the record-store
// implementation from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"budget/internal/store/memory"
	"budget/internal/store/sqlite"
	"budget/internal/store/supabase"
)

// Factory creates record stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named by config.Type.
func (f *Factory) Create(config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		repo, err := sqlite.NewRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case SupabaseBackend:
		repo, err := supabase.NewRepository(config.SupabaseURL, config.SupabaseKey)
		if err != nil {
			return nil, fmt.Errorf("initialize supabase store: %w", err)
		}
		f.logger.Info("Initialized Supabase backend", "url", config.SupabaseURL)
		return &Result{Store: repo, Cleanup: nil}, nil

	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Store: memory.New(), Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
