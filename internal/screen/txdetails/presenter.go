package txdetails

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

// ErrTxGone is reported when the shown transaction is no longer in the history.
var ErrTxGone = errors.New("transaction no longer in history")

type Presenter struct {
	presenter.Base[View]

	bridge  *async.Bridge
	bus     *eventbus.Bus
	wallets Wallets
	tx      wallet.TxDescription
	reads   lifecycle.Serial
}

func New(bridge *async.Bridge, bus *eventbus.Bus, wallets Wallets, tx wallet.TxDescription, log zerolog.Logger) *Presenter {
	return &Presenter{
		Base:    presenter.NewBase[View](log.With().Str("screen", "txdetails").Logger()),
		bridge:  bridge,
		bus:     bus,
		wallets: wallets,
		tx:      tx,
	}
}

func (p *Presenter) ViewIsReady() {
	p.WithView(func(v View) { v.ConfigTransaction(p.tx) })
}

func (p *Presenter) OnResume() {
	p.Track(p.bus.OnTrigger(eventbus.TransactionChanged, p.refresh))
}

// Transaction is the last known state of the shown transaction.
func (p *Presenter) Transaction() wallet.TxDescription { return p.tx }

func (p *Presenter) refresh() {
	id := p.tx.ID
	p.Track(p.reads.Set(async.Run(p.bridge, p.wallets.TxHistory, func(o async.Outcome[[]wallet.TxDescription]) {
		if p.Fail(o.Err) {
			return
		}
		tx, ok := wallet.FindTx(o.Value, id)
		if !ok {
			p.Fail(fmt.Errorf("%w: %x", ErrTxGone, id))
			return
		}
		p.tx = tx
		p.WithView(func(v View) { v.ConfigTransaction(tx) })
	})))
}
