package simwallet

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/beamwallet/internal/database"
	"github.com/jask/beamwallet/internal/database/repository"
	"github.com/jask/beamwallet/internal/wallet"
)

type recorder struct {
	mu       sync.Mutex
	progress [][2]int
	state    int
	tx       int
	keychain int
}

func (r *recorder) OnKeychainChanged()    { r.mu.Lock(); r.keychain++; r.mu.Unlock() }
func (r *recorder) OnTransactionChanged() { r.mu.Lock(); r.tx++; r.mu.Unlock() }
func (r *recorder) OnSystemStateChanged() { r.mu.Lock(); r.state++; r.mu.Unlock() }
func (r *recorder) OnTxPeerChanged()      {}
func (r *recorder) OnAddressChanged()     {}
func (r *recorder) OnSyncProgress(done, total int) {
	r.mu.Lock()
	r.progress = append(r.progress, [2]int{done, total})
	r.mu.Unlock()
}

func (r *recorder) states() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func newEngine(t *testing.T, demo bool) (*Engine, *clock.Mock, *recorder) {
	t.Helper()
	clk := clock.NewMock()
	rec := &recorder{}
	cfg := Config{SyncSteps: 2, SyncInterval: time.Second, DemoData: demo, PasswordCost: bcrypt.MinCost}
	return New(cfg, rec, clk, zerolog.Nop()), clk, rec
}

func phrase(t *testing.T, e *Engine) string {
	t.Helper()
	words, err := e.GeneratePhrase()
	require.NoError(t, err)
	return strings.Join(words, " ")
}

func TestGeneratePhrase(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, false)
	words, err := e.GeneratePhrase()
	require.NoError(t, err)
	require.Len(t, words, 12)
	require.True(t, bip39.IsMnemonicValid(strings.Join(words, " ")))
}

func TestCreateOpenAndPasswords(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, true)
	dir := t.TempDir()
	require.False(t, e.IsWalletInitialized(dir))

	_, err := e.CreateWallet(dir, "p@ss1", "not a real phrase")
	require.ErrorIs(t, err, ErrInvalidSeed)
	require.False(t, e.IsWalletInitialized(dir))

	w, err := e.CreateWallet(dir, "p@ss1", phrase(t, e))
	require.NoError(t, err)
	require.True(t, e.IsWalletInitialized(dir))

	txs, err := w.TxHistory()
	require.NoError(t, err)
	require.Len(t, txs, 12)
	available, err := w.AvailableBalance()
	require.NoError(t, err)
	require.Positive(t, available)

	_, err = e.CreateWallet(dir, "other", phrase(t, e))
	require.ErrorIs(t, err, ErrAlreadyInitialized)

	require.NoError(t, w.ChangePassword("n3w"))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = e.OpenWallet(dir, "p@ss1")
	require.ErrorIs(t, err, ErrWrongPassword)

	w, err = e.OpenWallet(dir, "n3w")
	require.NoError(t, err)
	again, err := w.TxHistory()
	require.NoError(t, err)
	require.Len(t, again, 12)
	require.NoError(t, w.Close())
}

func TestOpenMissingWallet(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, false)
	_, err := e.OpenWallet(t.TempDir(), "pw")
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestSyncAdvancesChainAndConfirmsTransfers(t *testing.T) {
	t.Parallel()

	e, clk, rec := newEngine(t, false)
	dir := t.TempDir()
	w, err := e.CreateWallet(dir, "pw", phrase(t, e))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// a pending incoming transfer, written through a second connection
	db, err := database.Open(dir + "/" + database.FileName)
	require.NoError(t, err)
	ctx := context.Background()
	id := []byte{0xca, 0xfe}
	require.NoError(t, repository.NewTransactionRepo(db).Insert(ctx, repository.Transaction{
		ID: id, Amount: 3_000_000, PeerID: []byte{1}, MyID: []byte{2},
		CreateTime: clk.Now(), ModifyTime: clk.Now(), Status: int(wallet.TxPending),
	}))
	_, err = repository.NewUtxoRepo(db).Insert(ctx, repository.Utxo{
		Amount: 3_000_000, Status: int(wallet.UtxoUnconfirmed), CreateTxID: id,
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	available, err := w.AvailableBalance()
	require.NoError(t, err)
	require.Zero(t, available)

	clk.Add(time.Second)
	require.Eventually(t, func() bool { return rec.states() == 1 }, time.Second, 5*time.Millisecond)
	clk.Add(time.Second)
	require.Eventually(t, func() bool { return rec.states() == 2 }, time.Second, 5*time.Millisecond)

	state, err := w.SystemState()
	require.NoError(t, err)
	require.Equal(t, uint64(2), state.Height)
	require.NotEqual(t, database.GenesisHash[:], state.Hash)

	txs, err := w.TxHistory()
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Equal(t, wallet.TxCompleted, txs[0].Status)

	available, err = w.AvailableBalance()
	require.NoError(t, err)
	require.Equal(t, int64(3_000_000), available)

	utxos, err := w.Utxos()
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	require.Equal(t, wallet.UtxoUnspent, utxos[0].Status)
	require.Equal(t, uint64(1), utxos[0].ConfirmHeight)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, [][2]int{{0, 2}, {1, 2}, {2, 2}}, rec.progress)
	require.Equal(t, 1, rec.tx)
	require.Equal(t, 1, rec.keychain)
}
