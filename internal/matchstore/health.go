package matchstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Health is diagnostic information about the match database.
type Health struct {
	Path          string
	Exists        bool
	Readable      bool
	SchemaVersion int
	Matches       int
	Error         string
}

// CheckHealth reports whether the database file exists and answers queries.
func (s *Store) CheckHealth(ctx context.Context) (Health, error) {
	health := Health{Path: s.path}
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat match database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("match database path %q is a directory", s.path)
	}
	health.Exists = true

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping match database: %w", err)
	}
	health.Readable = true

	if err := s.db.QueryRowContext(connCtx, "SELECT version FROM schema_version LIMIT 1").Scan(&health.SchemaVersion); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("read schema version: %w", err)
	}
	count, err := s.Count(connCtx)
	if err != nil {
		health.Error = err.Error()
		return health, err
	}
	health.Matches = count
	return health, nil
}
