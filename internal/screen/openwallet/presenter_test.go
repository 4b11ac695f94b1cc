package openwallet_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jask/beamwallet/internal/screen/openwallet"
	"github.com/jask/beamwallet/internal/screen/screentest"
	"github.com/jask/beamwallet/internal/wallet"
	"github.com/jask/beamwallet/internal/wallet/wallettest"
)

const (
	storage = "/data/wallet"
	seed    = "abandon ability able about above absent absorb abstract absurd abuse access zoo"
)

type spyView struct {
	mu    sync.Mutex
	calls []string
}

func (v *spyView) record(call string) {
	v.mu.Lock()
	v.calls = append(v.calls, call)
	v.mu.Unlock()
}

func (v *spyView) HideInputMethod()         { v.record("hide") }
func (v *spyView) ShowMessage(string)       { v.record("message") }
func (v *spyView) ConfigForCreatingWallet() { v.record("create-mode") }
func (v *spyView) ConfigForOpeningWallet()  { v.record("open-mode") }
func (v *spyView) ShowWalletScreen()        { v.record("wallet-screen") }
func (v *spyView) ShowStatus(s wallet.Status) {
	v.record("status:" + s.String())
}

func (v *spyView) recorded() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func setup(t *testing.T, initialized bool) (*screentest.Harness, *wallettest.Engine, *wallet.Session, *openwallet.Presenter, *spyView) {
	t.Helper()
	h := screentest.New(t, 0)
	engine := new(wallettest.Engine)
	engine.On("IsWalletInitialized", storage).Return(initialized)
	session := new(wallet.Session)
	gw := wallet.NewGateway(engine, session, storage, zerolog.Nop())

	p := openwallet.New(h.Bridge, gw, seed, zerolog.Nop())
	view := &spyView{}
	h.Do(func() {
		p.Bind(view, p)
		p.Resume()
	})
	return h, engine, session, p, view
}

func TestCreateWalletSucceeds(t *testing.T) {
	t.Parallel()

	h, engine, session, p, view := setup(t, false)
	w := new(wallettest.Wallet)
	engine.On("CreateWallet", storage, "p@ss1", seed).Return(w, nil).Once()

	h.Do(func() { p.OnProceedPressed("p@ss1") })

	require.Equal(t, []string{"create-mode", "hide", "status:ok", "wallet-screen"}, view.recorded())
	cur, err := session.Current()
	require.NoError(t, err)
	require.Same(t, w, cur)
}

func TestWrongPasswordShowsError(t *testing.T) {
	t.Parallel()

	h, engine, session, p, view := setup(t, true)
	engine.On("OpenWallet", storage, "nope").Return(nil, errors.New("wrong password")).Once()

	h.Do(func() { p.OnProceedPressed("nope") })

	require.Equal(t, []string{"open-mode", "hide", "status:error"}, view.recorded())
	_, err := session.Current()
	require.ErrorIs(t, err, wallet.ErrNoWallet)
}

func TestBlankPasswordSkipsEngine(t *testing.T) {
	t.Parallel()

	h, engine, _, p, view := setup(t, true)
	h.Do(func() { p.OnProceedPressed("   ") })

	require.Equal(t, []string{"open-mode", "hide", "message", "status:error"}, view.recorded())
	engine.AssertNotCalled(t, "OpenWallet", mock.Anything, mock.Anything)
}

func TestPressWhilePendingIsIgnored(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 1)
	engine := new(wallettest.Engine)
	engine.On("IsWalletInitialized", storage).Return(true)
	release := make(chan struct{})
	engine.On("OpenWallet", storage, "pw").Return(new(wallettest.Wallet), nil).
		Run(func(mock.Arguments) { <-release }).Once()

	p := openwallet.New(h.Bridge, wallet.NewGateway(engine, new(wallet.Session), storage, zerolog.Nop()), "", zerolog.Nop())
	view := &spyView{}
	h.Do(func() {
		p.Bind(view, p)
		p.Resume()
	})
	require.Eventually(t, func() bool { return len(view.recorded()) == 1 }, testTimeout, testTick)
	h.Loop.Flush()

	h.Do(func() { p.OnProceedPressed("pw") })
	h.Do(func() { p.OnProceedPressed("pw") })
	close(release)

	require.Eventually(t, func() bool { return len(view.recorded()) == 4 }, testTimeout, testTick)
	require.Equal(t, []string{"open-mode", "hide", "status:ok", "wallet-screen"}, view.recorded())
	engine.AssertNumberOfCalls(t, "OpenWallet", 1)
}

func TestDetachBeforeOpenFinishesRendersNothing(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 1)
	engine := new(wallettest.Engine)
	engine.On("IsWalletInitialized", storage).Return(true)
	started := make(chan struct{})
	release := make(chan struct{})
	engine.On("OpenWallet", storage, "pw").Return(new(wallettest.Wallet), nil).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).Once()

	p := openwallet.New(h.Bridge, wallet.NewGateway(engine, new(wallet.Session), storage, zerolog.Nop()), "", zerolog.Nop())
	view := &spyView{}
	h.Do(func() {
		p.Bind(view, p)
		p.Resume()
	})
	require.Eventually(t, func() bool { return len(view.recorded()) == 1 }, testTimeout, testTick)

	h.Do(func() { p.OnProceedPressed("pw") })
	<-started
	h.Do(func() {
		p.Pause()
		p.Detach()
	})
	close(release)
	require.NoError(t, h.Bridge.Stop(t.Context()))
	h.Loop.Flush()

	require.Equal(t, []string{"open-mode", "hide"}, view.recorded())
}
