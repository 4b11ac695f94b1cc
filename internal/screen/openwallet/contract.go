// Package openwallet is the password screen that creates or unlocks the wallet.
package openwallet

import "github.com/jask/beamwallet/internal/presenter"

type View interface {
	presenter.MvpView
	ConfigForCreatingWallet()
	ConfigForOpeningWallet()
	ShowWalletScreen()
}

// Wallets is the slice of the wallet gateway this screen needs.
type Wallets interface {
	IsInitialized() bool
	Create(password, seed string) error
	Open(password string) error
}
