package openwallet

import (
	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

type mode int

const (
	unknown mode = iota
	creating
	opening
)

type Presenter struct {
	presenter.Base[View]

	bridge  *async.Bridge
	wallets Wallets
	seed    string

	mode    mode
	check   lifecycle.Subscription
	proceed lifecycle.Subscription
}

// New returns the presenter. seed is the phrase confirmed on the welcome
// screen and is only used when no wallet exists yet.
func New(bridge *async.Bridge, wallets Wallets, seed string, log zerolog.Logger) *Presenter {
	return &Presenter{
		Base:    presenter.NewBase[View](log.With().Str("screen", "openwallet").Logger()),
		bridge:  bridge,
		wallets: wallets,
		seed:    seed,
	}
}

func (p *Presenter) ViewIsReady() {
	p.checkInitialized()
}

func (p *Presenter) OnResume() {
	// the first check may have been cancelled by a pause
	if p.mode == unknown && !running(p.check) {
		p.checkInitialized()
	}
}

func (p *Presenter) checkInitialized() {
	p.check = async.Run(p.bridge, func() (bool, error) {
		return p.wallets.IsInitialized(), nil
	}, func(o async.Outcome[bool]) {
		p.check = nil
		if o.Value {
			p.mode = opening
			p.WithView(View.ConfigForOpeningWallet)
		} else {
			p.mode = creating
			p.WithView(View.ConfigForCreatingWallet)
		}
	})
	p.Track(p.check)
}

// OnProceedPressed creates or opens the wallet with password. Presses before
// the mode is known or while a call is pending are ignored.
func (p *Presenter) OnProceedPressed(password string) {
	if p.mode == unknown || running(p.proceed) {
		return
	}
	p.WithView(View.HideInputMethod)

	create := p.mode == creating
	err := wallet.ValidatePassword(password)
	if err == nil && create {
		err = wallet.ValidateSeed(p.seed)
	}
	if p.Fail(err) {
		return
	}

	seed := p.seed
	p.proceed = async.Do(p.bridge, func() error {
		if create {
			return p.wallets.Create(password, seed)
		}
		return p.wallets.Open(password)
	}, func(err error) {
		p.proceed = nil
		if p.Fail(err) {
			return
		}
		p.WithView(func(v View) {
			v.ShowStatus(wallet.StatusOK)
			v.ShowWalletScreen()
		})
	})
	p.Track(p.proceed)
}

func running(sub lifecycle.Subscription) bool {
	return sub != nil && !sub.Cancelled()
}
