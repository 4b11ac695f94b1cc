package repository

import (
	"context"
	"database/sql"
)

// StateRepo handles the chain tip row.
type StateRepo struct{ db DBTX }

func NewStateRepo(db DBTX) *StateRepo { return &StateRepo{db: db} }

func (r *StateRepo) Set(ctx context.Context, s State) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO system_state(id, height, hash) VALUES (1, ?, ?)
	ON CONFLICT(id) DO UPDATE SET height=excluded.height, hash=excluded.hash;
	`, s.Height, s.Hash)
	return err
}

// Get returns nil before the first Set.
func (r *StateRepo) Get(ctx context.Context) (*State, error) {
	row := r.db.QueryRowContext(ctx, `SELECT height, hash FROM system_state WHERE id = 1`)
	var s State
	if err := row.Scan(&s.Height, &s.Hash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
