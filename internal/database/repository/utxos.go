package repository

import (
	"context"
)

// UtxoRepo handles coins.
type UtxoRepo struct{ db DBTX }

func NewUtxoRepo(db DBTX) *UtxoRepo { return &UtxoRepo{db: db} }

// Insert stores u and returns its assigned id.
func (r *UtxoRepo) Insert(ctx context.Context, u Utxo) (uint64, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO utxos(
	 amount, status, create_height, maturity, key_type, confirm_height,
	 confirm_hash, lock_height, create_tx_id, spend_tx_id)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		u.Amount, u.Status, u.CreateHeight, u.Maturity, u.KeyType, u.ConfirmHeight,
		u.ConfirmHash, u.LockHeight, u.CreateTxID, u.SpendTxID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// Confirm moves every coin created by txID from fromStatus to toStatus at height.
func (r *UtxoRepo) Confirm(ctx context.Context, txID []byte, fromStatus, toStatus int, height uint64, hash []byte) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	UPDATE utxos SET status = ?, confirm_height = ?, confirm_hash = ?
	WHERE create_tx_id = ? AND status = ?`, toStatus, height, hash, txID, fromStatus)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *UtxoRepo) List(ctx context.Context) ([]Utxo, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, amount, status, create_height, maturity, key_type, confirm_height,
	 confirm_hash, lock_height, create_tx_id, spend_tx_id
	FROM utxos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Utxo
	for rows.Next() {
		var u Utxo
		if err := rows.Scan(&u.ID, &u.Amount, &u.Status, &u.CreateHeight, &u.Maturity, &u.KeyType,
			&u.ConfirmHeight, &u.ConfirmHash, &u.LockHeight, &u.CreateTxID, &u.SpendTxID); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SumByStatus totals the amount of coins in status.
func (r *UtxoRepo) SumByStatus(ctx context.Context, status int) (int64, error) {
	var total int64
	row := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM utxos WHERE status = ?`, status)
	err := row.Scan(&total)
	return total, err
}
