package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out the sequence number stamped on every event.
// Row IDs are per table, so only this shared counter orders a check-in
// against a survey. It lives in the single row of GlobalSequenceTable.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the counter row. The table itself comes from
// the migration.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	seed := fmt.Sprintf("INSERT OR IGNORE INTO %s (id, next_val) VALUES (1, 1)", GlobalSequenceTable.Name)
	if _, err := db.Exec(seed); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next claims a number. Concurrent callers in this process queue on the
// mutex; the single UPDATE ... RETURNING keeps each claim atomic.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	claim := fmt.Sprintf("UPDATE %s SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1", GlobalSequenceTable.Name)
	var n int64
	if err := c.db.QueryRowContext(ctx, claim).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
