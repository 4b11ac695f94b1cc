package walletscreen_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/screen/screentest"
	"github.com/jask/beamwallet/internal/screen/walletscreen"
	"github.com/jask/beamwallet/internal/wallet"
)

type fakeWallets struct {
	mu        sync.Mutex
	txs       []wallet.TxDescription
	available int64
	state     wallet.SystemState
	coins     []wallet.Utxo
	err       error
	history   int
}

func (f *fakeWallets) TxHistory() ([]wallet.TxDescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history++
	return f.txs, f.err
}

func (f *fakeWallets) AvailableBalance() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available, f.err
}

func (f *fakeWallets) SystemState() (wallet.SystemState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.err
}

func (f *fakeWallets) Utxos() ([]wallet.Utxo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.coins, f.err
}

type spyView struct {
	mu        sync.Mutex
	inits     int
	histories [][]wallet.TxDescription
	available []int64
	states    []wallet.SystemState
	coins     [][]wallet.Utxo
	progress  []eventbus.SyncProgress
	details   []wallet.TxDescription
	statuses  []wallet.Status
}

func (v *spyView) HideInputMethod()   {}
func (v *spyView) ShowMessage(string) {}
func (v *spyView) Init()              { v.mu.Lock(); v.inits++; v.mu.Unlock() }
func (v *spyView) ShowStatus(s wallet.Status) {
	v.mu.Lock()
	v.statuses = append(v.statuses, s)
	v.mu.Unlock()
}
func (v *spyView) ConfigTxHistory(txs []wallet.TxDescription) {
	v.mu.Lock()
	v.histories = append(v.histories, txs)
	v.mu.Unlock()
}
func (v *spyView) ConfigAvailable(groth int64) {
	v.mu.Lock()
	v.available = append(v.available, groth)
	v.mu.Unlock()
}
func (v *spyView) ConfigSystemState(s wallet.SystemState) {
	v.mu.Lock()
	v.states = append(v.states, s)
	v.mu.Unlock()
}
func (v *spyView) ConfigUtxos(utxos []wallet.Utxo) {
	v.mu.Lock()
	v.coins = append(v.coins, utxos)
	v.mu.Unlock()
}
func (v *spyView) RenderSyncProgress(done, total int) {
	v.mu.Lock()
	v.progress = append(v.progress, eventbus.SyncProgress{Done: done, Total: total})
	v.mu.Unlock()
}
func (v *spyView) ShowTransactionDetails(tx wallet.TxDescription) {
	v.mu.Lock()
	v.details = append(v.details, tx)
	v.mu.Unlock()
}

func (v *spyView) renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.histories) + len(v.available) + len(v.states) + len(v.coins) + len(v.progress) + len(v.details) + len(v.statuses)
}

func (v *spyView) lastHistory() ([]wallet.TxDescription, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.histories) == 0 {
		return nil, 0
	}
	return v.histories[len(v.histories)-1], len(v.histories)
}

func start(t *testing.T, h *screentest.Harness, wallets walletscreen.Wallets) (*walletscreen.Presenter, *spyView) {
	t.Helper()
	p := walletscreen.New(h.Bridge, h.Bus, wallets, zerolog.Nop())
	view := &spyView{}
	h.Do(func() {
		p.Bind(view, p)
		p.Resume()
	})
	return p, view
}

func TestResumeLoadsEverything(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 0)
	wallets := &fakeWallets{
		txs:       []wallet.TxDescription{{ID: []byte{1}, Amount: 2_000_000}},
		available: 7_500_000,
		state:     wallet.SystemState{Height: 1200, Hash: []byte{0xab}},
		coins:     []wallet.Utxo{{ID: 1, Amount: 7_500_000, Status: wallet.UtxoUnspent}},
	}
	_, view := start(t, h, wallets)

	require.Equal(t, 1, view.inits)
	require.Equal(t, [][]wallet.TxDescription{wallets.txs}, view.histories)
	require.Equal(t, []int64{7_500_000}, view.available)
	require.Equal(t, []wallet.SystemState{wallets.state}, view.states)
	require.Equal(t, [][]wallet.Utxo{wallets.coins}, view.coins)
}

func TestNotificationsRefreshTheRightParts(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 0)
	_, view := start(t, h, &fakeWallets{})

	h.Publish(eventbus.TransactionChanged, nil)
	require.Len(t, view.histories, 2)
	require.Len(t, view.available, 2)
	require.Len(t, view.coins, 2)

	h.Publish(eventbus.KeychainChanged, nil)
	require.Len(t, view.available, 3)
	require.Len(t, view.coins, 3)

	h.Publish(eventbus.SystemStateChanged, nil)
	require.Len(t, view.states, 2)

	h.Publish(eventbus.TxPeerChanged, nil)
	h.Publish(eventbus.AddressChanged, nil)
	require.Len(t, view.histories, 4)

	h.Publish(eventbus.SyncProgressUpdated, eventbus.SyncProgress{Done: 3, Total: 10})
	require.Equal(t, []eventbus.SyncProgress{{Done: 3, Total: 10}}, view.progress)
}

func TestPauseStopsRefreshesAndResumeRestartsThem(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 0)
	wallets := &fakeWallets{}
	p, view := start(t, h, wallets)

	for i := 0; i < 2; i++ {
		h.Do(p.Pause)
		h.Publish(eventbus.TransactionChanged, nil)
		h.Do(p.Resume)
	}
	h.Publish(eventbus.TransactionChanged, nil)

	// three resumes plus one notification while active
	require.Equal(t, 4, wallets.history)
	require.Len(t, view.histories, 4)
	require.Equal(t, 1, h.Bus.Subscribers(eventbus.TransactionChanged))
}

func TestFailureShowsErrorStatus(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 0)
	_, view := start(t, h, &fakeWallets{err: &wallet.NativeCallError{Op: "getTxHistory", Err: errors.New("db locked")}})

	require.Equal(t, []wallet.Status{wallet.StatusError, wallet.StatusError, wallet.StatusError, wallet.StatusError}, view.statuses)
	require.Empty(t, view.histories)
}

func TestSelectingTransactionShowsDetails(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 0)
	p, view := start(t, h, &fakeWallets{})
	tx := wallet.TxDescription{ID: []byte{9}}
	h.Do(func() { p.OnTransactionSelected(tx) })
	require.Equal(t, []wallet.TxDescription{tx}, view.details)
}

type blockingWallets struct {
	fakeWallets
	started chan struct{}
	release chan struct{}
}

func (b *blockingWallets) TxHistory() ([]wallet.TxDescription, error) {
	close(b.started)
	<-b.release
	return []wallet.TxDescription{{ID: []byte{1}}}, nil
}

func TestDestroyBeforeHistoryArrivesRendersNothing(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 2)
	wallets := &blockingWallets{started: make(chan struct{}), release: make(chan struct{})}

	p, view := start(t, h, wallets)
	<-wallets.started
	require.Eventually(t, func() bool { return view.renders() == 3 }, time.Second, 5*time.Millisecond)

	h.Do(func() {
		p.Pause()
		p.Detach()
	})
	close(wallets.release)
	require.NoError(t, h.Bridge.Stop(t.Context()))
	h.Loop.Flush()

	require.Empty(t, view.histories)
	require.Equal(t, 3, view.renders())
}

// staleHistory answers its second read slowly with an older status than the
// reads before and after it.
type staleHistory struct {
	fakeWallets
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	reads int
}

func (s *staleHistory) TxHistory() ([]wallet.TxDescription, error) {
	s.mu.Lock()
	s.reads++
	n := s.reads
	s.mu.Unlock()

	if n == 2 {
		close(s.started)
		<-s.release
		return []wallet.TxDescription{{ID: []byte{1}, Status: wallet.TxPending}}, nil
	}
	return []wallet.TxDescription{{ID: []byte{1}, Status: wallet.TxCompleted}}, nil
}

func TestSlowOlderReadDoesNotOverwriteNewerHistory(t *testing.T) {
	t.Parallel()

	h := screentest.New(t, 2)
	wallets := &staleHistory{started: make(chan struct{}), release: make(chan struct{})}
	_, view := start(t, h, wallets)
	require.Eventually(t, func() bool { _, n := view.lastHistory(); return n == 1 }, time.Second, 5*time.Millisecond)

	h.Publish(eventbus.TxPeerChanged, nil)
	<-wallets.started
	h.Publish(eventbus.TxPeerChanged, nil)
	require.Eventually(t, func() bool { _, n := view.lastHistory(); return n == 2 }, time.Second, 5*time.Millisecond)

	close(wallets.release)
	require.NoError(t, h.Bridge.Stop(t.Context()))
	h.Loop.Flush()

	last, n := view.lastHistory()
	require.Equal(t, 2, n)
	require.Equal(t, wallet.TxCompleted, last[0].Status)
}
