// Package wallet is the boundary to the native wallet engine. Everything in
// here is blocking; screens reach it only through the async bridge.
package wallet

// Engine creates and opens wallets in a storage directory.
type Engine interface {
	CreateWallet(storagePath, password, seed string) (Wallet, error)
	OpenWallet(storagePath, password string) (Wallet, error)
	IsWalletInitialized(storagePath string) bool
	GeneratePhrase() ([]string, error)
}

// Wallet is an open wallet handle. It is shared process-wide and mutated only
// by the engine.
type Wallet interface {
	Close() error
	ChangePassword(password string) error
	SystemState() (SystemState, error)
	Utxos() ([]Utxo, error)
	TxHistory() ([]TxDescription, error)
	AvailableBalance() (int64, error)
}

// Listener receives the engine's push notifications. Engines may call it
// from any goroutine.
type Listener interface {
	OnKeychainChanged()
	OnTransactionChanged()
	OnSystemStateChanged()
	OnTxPeerChanged()
	OnAddressChanged()
	OnSyncProgress(done, total int)
}
