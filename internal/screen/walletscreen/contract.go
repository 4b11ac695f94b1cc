// Package walletscreen is the main wallet screen: balance, chain state, coins
// and transaction history, kept current by engine notifications.
package walletscreen

import (
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

type View interface {
	presenter.MvpView
	Init()
	ConfigTxHistory(txs []wallet.TxDescription)
	ConfigAvailable(groth int64)
	ConfigSystemState(state wallet.SystemState)
	ConfigUtxos(utxos []wallet.Utxo)
	RenderSyncProgress(done, total int)
	ShowTransactionDetails(tx wallet.TxDescription)
}

type Wallets interface {
	TxHistory() ([]wallet.TxDescription, error)
	AvailableBalance() (int64, error)
	SystemState() (wallet.SystemState, error)
	Utxos() ([]wallet.Utxo, error)
}
