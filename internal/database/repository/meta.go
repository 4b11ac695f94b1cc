package repository

import (
	"context"
	"database/sql"
)

// MetaRepo handles the wallet's credentials row.
type MetaRepo struct{ db DBTX }

func NewMetaRepo(db DBTX) *MetaRepo { return &MetaRepo{db: db} }

func (r *MetaRepo) SetPasswordHash(ctx context.Context, hash []byte) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO wallet_meta(id, password_hash, created_at, updated_at)
	VALUES (1, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 password_hash=excluded.password_hash,
	 updated_at=CURRENT_TIMESTAMP;
	`, hash)
	return err
}

// Get returns nil when the wallet has no credentials yet.
func (r *MetaRepo) Get(ctx context.Context) (*Meta, error) {
	row := r.db.QueryRowContext(ctx, `SELECT password_hash, created_at, updated_at FROM wallet_meta WHERE id = 1`)
	var m Meta
	if err := row.Scan(&m.PasswordHash, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
