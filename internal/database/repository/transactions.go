package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	Statuses    []int
	Sender      *bool
	OldestFirst bool
	Limit       int // zero means no limit
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db DBTX
}

func NewTransactionRepo(db DBTX) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, amount, fee, change, min_height, peer_id, my_id, message,
	 create_time, modify_time, sender, status)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		t.ID, t.Amount, t.Fee, t.Change, t.MinHeight, t.PeerID, t.MyID, t.Message,
		t.CreateTime, t.ModifyTime, t.Sender, t.Status)
	return err
}

func (r *TransactionRepo) UpdateStatus(ctx context.Context, id []byte, status int, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE transactions SET status = ?, modify_time = ? WHERE id = ?`, status, at, id)
	return err
}

// Oldest returns the earliest created transaction in one of statuses, or nil.
func (r *TransactionRepo) Oldest(ctx context.Context, statuses ...int) (*Transaction, error) {
	txs, err := r.List(ctx, TransactionFilters{Statuses: statuses, OldestFirst: true, Limit: 1})
	if err != nil || len(txs) == 0 {
		return nil, err
	}
	return &txs[0], nil
}

const transactionColumns = "id, amount, fee, change, min_height, peer_id, my_id, message, create_time, modify_time, sender, status"

// List returns transactions newest first unless OldestFirst is set.
func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]Transaction, error) {
	var where []string
	var args []interface{}

	if len(f.Statuses) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(f.Statuses)), ",")
		where = append(where, "status IN ("+marks+")")
		for _, s := range f.Statuses {
			args = append(args, s)
		}
	}
	if f.Sender != nil {
		where = append(where, "sender = ?")
		args = append(args, *f.Sender)
	}

	query := "SELECT " + transactionColumns + " FROM transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.OldestFirst {
		query += " ORDER BY create_time ASC, id"
	} else {
		query += " ORDER BY create_time DESC, id"
	}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Get(ctx context.Context, id []byte) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// scanner covers both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (Transaction, error) {
	var t Transaction
	// a NULL message scans to nil, an empty one to a non-nil empty slice
	if err := row.Scan(&t.ID, &t.Amount, &t.Fee, &t.Change, &t.MinHeight, &t.PeerID, &t.MyID,
		&t.Message, &t.CreateTime, &t.ModifyTime, &t.Sender, &t.Status); err != nil {
		return Transaction{}, err
	}
	return t, nil
}
