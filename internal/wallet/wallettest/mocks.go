// Package wallettest provides testify doubles for the wallet engine boundary.
package wallettest

import (
	"github.com/stretchr/testify/mock"

	"github.com/jask/beamwallet/internal/wallet"
)

// Engine is a mock wallet.Engine.
type Engine struct{ mock.Mock }

var _ wallet.Engine = (*Engine)(nil)

func (e *Engine) CreateWallet(storagePath, password, seed string) (wallet.Wallet, error) {
	ret := e.Called(storagePath, password, seed)
	var w wallet.Wallet
	if ret.Get(0) != nil {
		w = ret.Get(0).(wallet.Wallet)
	}
	return w, ret.Error(1)
}

func (e *Engine) OpenWallet(storagePath, password string) (wallet.Wallet, error) {
	ret := e.Called(storagePath, password)
	var w wallet.Wallet
	if ret.Get(0) != nil {
		w = ret.Get(0).(wallet.Wallet)
	}
	return w, ret.Error(1)
}

func (e *Engine) IsWalletInitialized(storagePath string) bool {
	return e.Called(storagePath).Bool(0)
}

func (e *Engine) GeneratePhrase() ([]string, error) {
	ret := e.Called()
	var words []string
	if ret.Get(0) != nil {
		words = ret.Get(0).([]string)
	}
	return words, ret.Error(1)
}

// Wallet is a mock wallet.Wallet.
type Wallet struct{ mock.Mock }

var _ wallet.Wallet = (*Wallet)(nil)

func (w *Wallet) Close() error                         { return w.Called().Error(0) }
func (w *Wallet) ChangePassword(password string) error { return w.Called(password).Error(0) }

func (w *Wallet) SystemState() (wallet.SystemState, error) {
	ret := w.Called()
	var s wallet.SystemState
	if ret.Get(0) != nil {
		s = ret.Get(0).(wallet.SystemState)
	}
	return s, ret.Error(1)
}

func (w *Wallet) Utxos() ([]wallet.Utxo, error) {
	ret := w.Called()
	var utxos []wallet.Utxo
	if ret.Get(0) != nil {
		utxos = ret.Get(0).([]wallet.Utxo)
	}
	return utxos, ret.Error(1)
}

func (w *Wallet) TxHistory() ([]wallet.TxDescription, error) {
	ret := w.Called()
	var txs []wallet.TxDescription
	if ret.Get(0) != nil {
		txs = ret.Get(0).([]wallet.TxDescription)
	}
	return txs, ret.Error(1)
}

func (w *Wallet) AvailableBalance() (int64, error) {
	ret := w.Called()
	var amount int64
	if ret.Get(0) != nil {
		amount = ret.Get(0).(int64)
	}
	return amount, ret.Error(1)
}
