package database

import (
	"context"
	"crypto/sha256"
	"database/sql"

	"github.com/jask/beamwallet/internal/database/repository"
)

// GenesisHash is the hash of the chain tip before the first sync.
var GenesisHash = sha256.Sum256([]byte("beamwallet genesis"))

// SeedDefaults ensures the chain tip row exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	states := repository.NewStateRepo(db)
	existing, err := states.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return states.Set(ctx, repository.State{Height: 0, Hash: GenesisHash[:]})
}
