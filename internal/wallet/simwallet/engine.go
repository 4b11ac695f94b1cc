// Package simwallet is an in-process wallet engine backed by SQLite. It keeps
// real credentials and a stored history, and simulates the node connection with
// a clock-driven sync that advances the chain and confirms pending transfers.
package simwallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/bcrypt"

	"github.com/jask/beamwallet/internal/database"
	"github.com/jask/beamwallet/internal/database/repository"
	"github.com/jask/beamwallet/internal/testdata"
	"github.com/jask/beamwallet/internal/wallet"
)

var (
	ErrWrongPassword      = errors.New("wrong password")
	ErrNotInitialized     = errors.New("wallet not initialized")
	ErrAlreadyInitialized = errors.New("wallet already initialized")
	ErrInvalidSeed        = errors.New("invalid seed phrase")
)

// entropyBits gives a 12 word phrase.
const entropyBits = 128

type Config struct {
	// SyncSteps is the number of blocks reported as the initial sync.
	SyncSteps    int
	SyncInterval time.Duration
	DemoData     bool
	PasswordCost int
}

func DefaultConfig() Config {
	return Config{
		SyncSteps:    20,
		SyncInterval: time.Second,
		DemoData:     true,
		PasswordCost: bcrypt.DefaultCost,
	}
}

type Engine struct {
	cfg      Config
	listener wallet.Listener
	clock    clock.Clock
	log      zerolog.Logger
}

var _ wallet.Engine = (*Engine)(nil)

func New(cfg Config, listener wallet.Listener, clk clock.Clock, log zerolog.Logger) *Engine {
	if clk == nil {
		clk = clock.New()
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = time.Second
	}
	if cfg.PasswordCost == 0 {
		cfg.PasswordCost = bcrypt.DefaultCost
	}
	return &Engine{
		cfg:      cfg,
		listener: listener,
		clock:    clk,
		log:      log.With().Str("component", "simwallet").Logger(),
	}
}

func dbPath(storagePath string) string {
	return filepath.Join(storagePath, database.FileName)
}

func (e *Engine) IsWalletInitialized(storagePath string) bool {
	_, err := os.Stat(dbPath(storagePath))
	return err == nil
}

func (e *Engine) GeneratePhrase() ([]string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Fields(mnemonic), nil
}

func (e *Engine) CreateWallet(storagePath, password, seed string) (wallet.Wallet, error) {
	if e.IsWalletInitialized(storagePath) {
		return nil, ErrAlreadyInitialized
	}
	if !bip39.IsMnemonicValid(seed) {
		return nil, ErrInvalidSeed
	}
	if err := os.MkdirAll(storagePath, 0o700); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), e.cfg.PasswordCost)
	if err != nil {
		return nil, err
	}

	path := dbPath(storagePath)
	db, err := e.prepare(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	ctx := context.Background()
	err = repository.NewMetaRepo(db).SetPasswordHash(ctx, hash)
	if err == nil && e.cfg.DemoData {
		rng := rand.New(rand.NewPCG(uint64(e.clock.Now().UnixNano()), 0))
		err = testdata.Seed(ctx, testdata.Repos{
			Transactions: repository.NewTransactionRepo(db),
			Utxos:        repository.NewUtxoRepo(db),
		}, e.clock.Now(), rng)
	}
	if err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return nil, err
	}
	e.log.Info().Str("path", path).Msg("wallet created")
	return e.start(db), nil
}

func (e *Engine) OpenWallet(storagePath, password string) (wallet.Wallet, error) {
	if !e.IsWalletInitialized(storagePath) {
		return nil, ErrNotInitialized
	}
	db, err := e.prepare(dbPath(storagePath))
	if err != nil {
		return nil, err
	}
	meta, err := repository.NewMetaRepo(db).Get(context.Background())
	if err == nil && meta == nil {
		err = ErrNotInitialized
	}
	if err == nil {
		if bcrypt.CompareHashAndPassword(meta.PasswordHash, []byte(password)) != nil {
			err = ErrWrongPassword
		}
	}
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	e.log.Info().Str("path", storagePath).Msg("wallet opened")
	return e.start(db), nil
}

func (e *Engine) prepare(path string) (*sql.DB, error) {
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.SeedDefaults(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
