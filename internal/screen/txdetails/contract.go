// Package txdetails shows one transaction and follows its status changes.
package txdetails

import (
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

type View interface {
	presenter.MvpView
	ConfigTransaction(tx wallet.TxDescription)
}

type Wallets interface {
	TxHistory() ([]wallet.TxDescription, error)
}
