package testdata

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/jask/beamwallet/internal/database/repository"
	"github.com/jask/beamwallet/internal/wallet"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Transactions *repository.TransactionRepo
	Utxos        *repository.UtxoRepo
}

const groth = 1_000_000

var comments = []string{"rent split", "coffee", "", "invoice 42", "thanks!"}

// Seed fills a new wallet with a sample history: a funded coinbase coin and a
// mix of settled and in-flight transfers. Coins of pending transfers stay
// unconfirmed until the sync confirms them.
func Seed(ctx context.Context, repos Repos, now time.Time, rng *rand.Rand) error {
	myID := uuidBytes()

	coinbase := repository.Utxo{
		Amount:        int64(40+rng.IntN(60)) * groth,
		Status:        int(wallet.UtxoUnspent),
		KeyType:       int(wallet.KeyCoinbase),
		CreateHeight:  1,
		Maturity:      60,
		ConfirmHeight: 1,
	}
	if _, err := repos.Utxos.Insert(ctx, coinbase); err != nil {
		return err
	}

	statuses := []wallet.TxStatus{
		wallet.TxCompleted, wallet.TxCompleted, wallet.TxCompleted,
		wallet.TxPending, wallet.TxInProgress, wallet.TxRegistered,
		wallet.TxFailed, wallet.TxCancelled,
	}
	for i := 0; i < 12; i++ {
		status := statuses[rng.IntN(len(statuses))]
		sender := rng.IntN(3) == 0
		created := now.Add(-time.Duration(rng.IntN(14*24)) * time.Hour).UTC().Truncate(time.Second)
		tx := repository.Transaction{
			ID:         uuidBytes(),
			Amount:     int64(1+rng.IntN(20))*groth + int64(rng.IntN(groth)),
			Fee:        int64(10 + rng.IntN(90)),
			MinHeight:  uint64(1 + i),
			PeerID:     uuidBytes(),
			MyID:       myID,
			CreateTime: created,
			ModifyTime: created.Add(time.Duration(rng.IntN(60)) * time.Minute),
			Sender:     sender,
			Status:     int(status),
		}
		if c := comments[rng.IntN(len(comments))]; c != "" {
			tx.Message = []byte(c)
		}
		if err := repos.Transactions.Insert(ctx, tx); err != nil {
			return err
		}
		if sender {
			continue
		}
		coin, ok := coinFor(status)
		if !ok {
			continue
		}
		if _, err := repos.Utxos.Insert(ctx, repository.Utxo{
			Amount:       tx.Amount,
			Status:       int(coin),
			KeyType:      int(wallet.KeyRegular),
			CreateHeight: tx.MinHeight,
			CreateTxID:   tx.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// coinFor is the status of the coin a received transfer produces.
func coinFor(status wallet.TxStatus) (wallet.UtxoStatus, bool) {
	switch status {
	case wallet.TxCompleted:
		return wallet.UtxoUnspent, true
	case wallet.TxPending, wallet.TxInProgress, wallet.TxRegistered:
		return wallet.UtxoUnconfirmed, true
	default:
		return 0, false
	}
}

func uuidBytes() []byte {
	id := uuid.New()
	return id[:]
}
