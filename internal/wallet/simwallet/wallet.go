package simwallet

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/binary"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/beamwallet/internal/database"
	"github.com/jask/beamwallet/internal/database/repository"
	"github.com/jask/beamwallet/internal/wallet"
)

type openWallet struct {
	engine *Engine
	db     *sql.DB
	meta   *repository.MetaRepo
	state  *repository.StateRepo
	txs    *repository.TransactionRepo
	utxos  *repository.UtxoRepo

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

var _ wallet.Wallet = (*openWallet)(nil)

func (e *Engine) start(db *sql.DB) *openWallet {
	w := &openWallet{
		engine: e,
		db:     db,
		meta:   repository.NewMetaRepo(db),
		state:  repository.NewStateRepo(db),
		txs:    repository.NewTransactionRepo(db),
		utxos:  repository.NewUtxoRepo(db),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	// created here so a mock clock can tick it as soon as start returns
	ticker := e.clock.Ticker(e.cfg.SyncInterval)
	go w.sync(ticker)
	return w
}

// Close stops the sync and closes the database. Later calls return the
// first call's result.
func (w *openWallet) Close() error {
	w.closeOnce.Do(func() {
		close(w.stop)
		<-w.done
		var result *multierror.Error
		if _, err := w.db.Exec(`PRAGMA optimize`); err != nil {
			result = multierror.Append(result, err)
		}
		if err := w.db.Close(); err != nil {
			result = multierror.Append(result, err)
		}
		w.closeErr = result.ErrorOrNil()
	})
	return w.closeErr
}

func (w *openWallet) ChangePassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), w.engine.cfg.PasswordCost)
	if err != nil {
		return err
	}
	return w.meta.SetPasswordHash(context.Background(), hash)
}

func (w *openWallet) SystemState() (wallet.SystemState, error) {
	s, err := w.state.Get(context.Background())
	if err != nil || s == nil {
		return wallet.SystemState{}, err
	}
	return wallet.SystemState{Height: s.Height, Hash: s.Hash}, nil
}

func (w *openWallet) Utxos() ([]wallet.Utxo, error) {
	rows, err := w.utxos.List(context.Background())
	if err != nil {
		return nil, err
	}
	out := make([]wallet.Utxo, 0, len(rows))
	for _, u := range rows {
		out = append(out, wallet.Utxo{
			ID:            u.ID,
			Amount:        u.Amount,
			Status:        wallet.UtxoStatusFromCode(u.Status),
			CreateHeight:  u.CreateHeight,
			Maturity:      u.Maturity,
			KeyType:       wallet.KeyTypeFromCode(u.KeyType),
			ConfirmHeight: u.ConfirmHeight,
			ConfirmHash:   u.ConfirmHash,
			LockHeight:    u.LockHeight,
			CreateTxID:    u.CreateTxID,
			SpendTxID:     u.SpendTxID,
		})
	}
	return out, nil
}

func (w *openWallet) TxHistory() ([]wallet.TxDescription, error) {
	rows, err := w.txs.List(context.Background(), repository.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	out := make([]wallet.TxDescription, 0, len(rows))
	for _, t := range rows {
		out = append(out, toTxDescription(t))
	}
	return out, nil
}

func (w *openWallet) AvailableBalance() (int64, error) {
	return w.utxos.SumByStatus(context.Background(), int(wallet.UtxoUnspent))
}

func toTxDescription(t repository.Transaction) wallet.TxDescription {
	return wallet.TxDescription{
		ID:         t.ID,
		Amount:     t.Amount,
		Fee:        t.Fee,
		Change:     t.Change,
		MinHeight:  t.MinHeight,
		PeerID:     t.PeerID,
		MyID:       t.MyID,
		Message:    t.Message,
		CreateTime: t.CreateTime,
		ModifyTime: t.ModifyTime,
		Sender:     t.Sender,
		Status:     wallet.TxStatusFromCode(t.Status),
	}
}

// sync mines one block per tick. The first SyncSteps blocks are reported as
// sync progress. Each block confirms the oldest in-flight transfer.
func (w *openWallet) sync(ticker *clock.Ticker) {
	defer close(w.done)
	defer ticker.Stop()
	e := w.engine

	total := e.cfg.SyncSteps
	if total > 0 {
		w.notify(func(l wallet.Listener) { l.OnSyncProgress(0, total) })
	}
	for step := 1; ; step++ {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
		}
		changed, err := w.mine()
		if err != nil {
			e.log.Warn().Err(err).Int("step", step).Msg("sync step failed")
			continue
		}
		if step <= total {
			w.notify(func(l wallet.Listener) { l.OnSyncProgress(step, total) })
		}
		w.notify(func(l wallet.Listener) { l.OnSystemStateChanged() })
		if changed {
			w.notify(func(l wallet.Listener) {
				l.OnTransactionChanged()
				l.OnKeychainChanged()
			})
		}
	}
}

// mine advances the tip by one block and reports whether a transfer settled.
func (w *openWallet) mine() (bool, error) {
	ctx := context.Background()
	changed := false
	err := database.WithTx(w.db, func(tx *sql.Tx) error {
		states := repository.NewStateRepo(tx)
		tip, err := states.Get(ctx)
		if err != nil {
			return err
		}
		if tip == nil {
			tip = &repository.State{Hash: database.GenesisHash[:]}
		}
		next := repository.State{Height: tip.Height + 1}
		next.Hash = nextHash(tip.Hash, next.Height)
		if err := states.Set(ctx, next); err != nil {
			return err
		}

		txs := repository.NewTransactionRepo(tx)
		pending, err := txs.Oldest(ctx, int(wallet.TxPending), int(wallet.TxInProgress), int(wallet.TxRegistered))
		if err != nil || pending == nil {
			return err
		}
		if err := txs.UpdateStatus(ctx, pending.ID, int(wallet.TxCompleted), w.engine.clock.Now().UTC()); err != nil {
			return err
		}
		_, err = repository.NewUtxoRepo(tx).Confirm(ctx, pending.ID,
			int(wallet.UtxoUnconfirmed), int(wallet.UtxoUnspent), next.Height, next.Hash)
		if err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (w *openWallet) notify(fn func(wallet.Listener)) {
	if l := w.engine.listener; l != nil {
		fn(l)
	}
}

func nextHash(prev []byte, height uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], height)
	sum := sha256.Sum256(append(append([]byte(nil), prev...), buf[:]...))
	return sum[:]
}
