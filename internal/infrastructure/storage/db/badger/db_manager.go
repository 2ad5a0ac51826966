package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/mycitadel/citadel-wallet/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const walletsDir = "wallets"

type repoManager struct {
	store            *badgerhold.Store
	walletRepository domain.WalletRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	walletDb, err := createDb(filepath.Join(baseDbDir, walletsDir), logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	return &repoManager{
		store:            walletDb,
		walletRepository: NewWalletRepositoryImpl(walletDb),
	}, nil
}

func (r *repoManager) WalletRepository() domain.WalletRepository {
	return r.walletRepository
}

func (r *repoManager) Close() {
	r.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	opts.Compression = options.ZSTD

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
