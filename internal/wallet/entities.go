package wallet

import (
	"bytes"
	"time"
)

// SystemState is the chain tip known to the wallet.
type SystemState struct {
	Height uint64
	Hash   []byte
}

// Utxo is one coin owned by the wallet. Amounts are in groth.
type Utxo struct {
	ID            uint64
	Amount        int64
	Status        UtxoStatus
	CreateHeight  uint64
	Maturity      uint64
	KeyType       KeyType
	ConfirmHeight uint64
	ConfirmHash   []byte
	LockHeight    uint64
	CreateTxID    []byte
	SpendTxID     []byte
}

// TxDescription describes one wallet transaction. Amounts are in groth.
type TxDescription struct {
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
	Status     TxStatus
}

func (t TxDescription) Direction() TxSender {
	return TxSenderFromFlag(t.Sender)
}

// HasMessage reports whether the transaction carries a comment.
func (t TxDescription) HasMessage() bool {
	return t.Message != nil
}

// FindTx returns the transaction with the given id.
func FindTx(txs []TxDescription, id []byte) (TxDescription, bool) {
	for _, tx := range txs {
		if bytes.Equal(tx.ID, id) {
			return tx, true
		}
	}
	return TxDescription{}, false
}
