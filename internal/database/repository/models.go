package repository

import "time"

// Meta is the single wallet_meta row.
type Meta struct {
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// State is the single system_state row.
type State struct {
	Height uint64
	Hash   []byte
}

// Transaction represents a transaction row. Status is the engine's numeric code.
type Transaction struct {
	ID         []byte
	Amount     int64
	Fee        int64
	Change     int64
	MinHeight  uint64
	PeerID     []byte
	MyID       []byte
	Message    []byte
	CreateTime time.Time
	ModifyTime time.Time
	Sender     bool
	Status     int
}

// Utxo represents a coin row. Status and KeyType are the engine's numeric codes.
type Utxo struct {
	ID            uint64
	Amount        int64
	Status        int
	CreateHeight  uint64
	Maturity      uint64
	KeyType       int
	ConfirmHeight uint64
	ConfirmHash   []byte
	LockHeight    uint64
	CreateTxID    []byte
	SpendTxID     []byte
}
