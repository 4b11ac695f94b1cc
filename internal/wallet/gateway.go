package wallet

import (
	"errors"

	"github.com/rs/zerolog"
)

// Gateway is what screens talk to. It validates input before touching the
// engine, classifies engine failures as NativeCallError and keeps the open
// handle in the session. Every method blocks.
type Gateway struct {
	engine      Engine
	session     *Session
	storagePath string
	log         zerolog.Logger
}

func NewGateway(engine Engine, session *Session, storagePath string, log zerolog.Logger) *Gateway {
	return &Gateway{
		engine:      engine,
		session:     session,
		storagePath: storagePath,
		log:         log.With().Str("component", "wallet").Logger(),
	}
}

func (g *Gateway) IsInitialized() bool {
	return g.engine.IsWalletInitialized(g.storagePath)
}

// Create makes a new wallet from seed and makes it the open wallet.
func (g *Gateway) Create(password, seed string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if err := ValidateSeed(seed); err != nil {
		return err
	}
	w, err := g.engine.CreateWallet(g.storagePath, password, NormalizePhrase(seed))
	if err != nil {
		return g.fail("createWallet", err)
	}
	g.install(w)
	return nil
}

// Open unlocks the existing wallet and makes it the open wallet.
func (g *Gateway) Open(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	w, err := g.engine.OpenWallet(g.storagePath, password)
	if err != nil {
		return g.fail("openWallet", err)
	}
	g.install(w)
	return nil
}

func (g *Gateway) GeneratePhrase() ([]string, error) {
	words, err := g.engine.GeneratePhrase()
	if err != nil {
		return nil, g.fail("generatePhrase", err)
	}
	return words, nil
}

func (g *Gateway) ChangePassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	w, err := g.session.Current()
	if err != nil {
		return err
	}
	return g.fail("changeWalletPassword", w.ChangePassword(password))
}

func (g *Gateway) TxHistory() ([]TxDescription, error) {
	w, err := g.session.Current()
	if err != nil {
		return nil, err
	}
	txs, err := w.TxHistory()
	return txs, g.fail("getTxHistory", err)
}

func (g *Gateway) AvailableBalance() (int64, error) {
	w, err := g.session.Current()
	if err != nil {
		return 0, err
	}
	amount, err := w.AvailableBalance()
	return amount, g.fail("getAvailable", err)
}

func (g *Gateway) SystemState() (SystemState, error) {
	w, err := g.session.Current()
	if err != nil {
		return SystemState{}, err
	}
	state, err := w.SystemState()
	return state, g.fail("getSystemState", err)
}

func (g *Gateway) Utxos() ([]Utxo, error) {
	w, err := g.session.Current()
	if err != nil {
		return nil, err
	}
	utxos, err := w.Utxos()
	return utxos, g.fail("getUtxos", err)
}

func (g *Gateway) install(w Wallet) {
	prev := g.session.Replace(w)
	if prev == nil || prev == w {
		return
	}
	if err := prev.Close(); err != nil {
		g.log.Warn().Err(err).Msg("closing replaced wallet")
	}
}

func (g *Gateway) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	err = nativeErr(op, err)
	if errors.Is(err, ErrNativeCall) {
		g.log.Warn().Err(err).Str("op", op).Msg("native call failed")
	}
	return err
}
