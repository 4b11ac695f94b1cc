package walletscreen

import (
	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

type Presenter struct {
	presenter.Base[View]

	bridge  *async.Bridge
	bus     *eventbus.Bus
	wallets Wallets

	// one slot per read; a newer read drops the result of an older one
	history   lifecycle.Serial
	available lifecycle.Serial
	state     lifecycle.Serial
	coins     lifecycle.Serial
}

func New(bridge *async.Bridge, bus *eventbus.Bus, wallets Wallets, log zerolog.Logger) *Presenter {
	return &Presenter{
		Base:    presenter.NewBase[View](log.With().Str("screen", "wallet").Logger()),
		bridge:  bridge,
		bus:     bus,
		wallets: wallets,
	}
}

func (p *Presenter) ViewIsReady() {
	p.WithView(View.Init)
}

func (p *Presenter) OnResume() {
	p.loadHistory()
	p.loadAvailable()
	p.loadState()
	p.loadCoins()

	p.Track(p.bus.OnTrigger(eventbus.TransactionChanged, func() {
		p.loadHistory()
		p.loadAvailable()
		p.loadCoins()
	}))
	p.Track(p.bus.OnTrigger(eventbus.KeychainChanged, func() {
		p.loadAvailable()
		p.loadCoins()
	}))
	p.Track(p.bus.OnTrigger(eventbus.SystemStateChanged, p.loadState))
	p.Track(p.bus.OnTrigger(eventbus.TxPeerChanged, p.loadHistory))
	p.Track(p.bus.OnTrigger(eventbus.AddressChanged, p.loadHistory))
	p.Track(p.bus.OnSyncProgress(func(sp eventbus.SyncProgress) {
		p.WithView(func(v View) { v.RenderSyncProgress(sp.Done, sp.Total) })
	}))
}

// OnTransactionSelected opens the details of tx.
func (p *Presenter) OnTransactionSelected(tx wallet.TxDescription) {
	p.WithView(func(v View) { v.ShowTransactionDetails(tx) })
}

func (p *Presenter) loadHistory() {
	p.Track(p.history.Set(async.Run(p.bridge, p.wallets.TxHistory, func(o async.Outcome[[]wallet.TxDescription]) {
		if p.Fail(o.Err) {
			return
		}
		p.WithView(func(v View) { v.ConfigTxHistory(o.Value) })
	})))
}

func (p *Presenter) loadAvailable() {
	p.Track(p.available.Set(async.Run(p.bridge, p.wallets.AvailableBalance, func(o async.Outcome[int64]) {
		if p.Fail(o.Err) {
			return
		}
		p.WithView(func(v View) { v.ConfigAvailable(o.Value) })
	})))
}

func (p *Presenter) loadState() {
	p.Track(p.state.Set(async.Run(p.bridge, p.wallets.SystemState, func(o async.Outcome[wallet.SystemState]) {
		if p.Fail(o.Err) {
			return
		}
		p.WithView(func(v View) { v.ConfigSystemState(o.Value) })
	})))
}

func (p *Presenter) loadCoins() {
	p.Track(p.coins.Set(async.Run(p.bridge, p.wallets.Utxos, func(o async.Outcome[[]wallet.Utxo]) {
		if p.Fail(o.Err) {
			return
		}
		p.WithView(func(v View) { v.ConfigUtxos(o.Value) })
	})))
}
