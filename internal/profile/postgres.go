package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPersistence stores the session snapshot as a JSONB row keyed by
// session id. One row per session; saves upsert in place.
type PostgresPersistence struct {
	pool      *pgxpool.Pool
	sessionID string
}

const sessionTableDDL = `
CREATE TABLE IF NOT EXISTS career_sessions (
	session_id TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// NewPostgresPersistence connects to the database and ensures the session
// table exists.
func NewPostgresPersistence(ctx context.Context, databaseURL, sessionID string) (*PostgresPersistence, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if _, err := pool.Exec(ctx, sessionTableDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure session table: %w", err)
	}
	return &PostgresPersistence{pool: pool, sessionID: sessionID}, nil
}

// Load fetches the snapshot row for this session. No row means an empty session.
func (p *PostgresPersistence) Load() (Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT state FROM career_sessions WHERE session_id = $1`, p.sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("failed to load session %s: %w", p.sessionID, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("corrupt session state for %s: %w", p.sessionID, err)
	}
	return snap, nil
}

// Save upserts the snapshot for this session.
func (p *PostgresPersistence) Save(s Snapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO career_sessions (session_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		p.sessionID, raw)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", p.sessionID, err)
	}
	return nil
}

// Reset deletes the session row.
func (p *PostgresPersistence) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := p.pool.Exec(ctx,
		`DELETE FROM career_sessions WHERE session_id = $1`, p.sessionID); err != nil {
		return fmt.Errorf("failed to reset session %s: %w", p.sessionID, err)
	}
	return nil
}

// Close releases the connection pool.
func (p *PostgresPersistence) Close() {
	p.pool.Close()
}
