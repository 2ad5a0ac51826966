package dbbadger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const maxUpdateAttempts = 5

type walletRepositoryImpl struct {
	store *badgerhold.Store
}

func NewWalletRepositoryImpl(store *badgerhold.Store) domain.WalletRepository {
	return &walletRepositoryImpl{store}
}

func (r *walletRepositoryImpl) AddWallet(
	_ context.Context, id string, wallet *domain.Wallet,
) error {
	dto, err := newWalletDTO(id, wallet)
	if err != nil {
		return err
	}

	if err := r.store.Insert(id, *dto); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("%w: %s", domain.ErrWalletAlreadyExists, id)
		}
		return err
	}
	return nil
}

func (r *walletRepositoryImpl) GetWallet(
	_ context.Context, id string,
) (*domain.Wallet, error) {
	var dto walletDTO
	if err := r.store.Get(id, &dto); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
		}
		return nil, err
	}
	return dto.toDomain()
}

func (r *walletRepositoryImpl) GetAllWallets(
	_ context.Context,
) (map[string]*domain.Wallet, error) {
	var dtos []walletDTO
	if err := r.store.Find(&dtos, nil); err != nil {
		return nil, err
	}

	wallets := make(map[string]*domain.Wallet, len(dtos))
	for _, dto := range dtos {
		w, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("wallet %s: %w", dto.ID, err)
		}
		wallets[dto.ID] = w
	}
	return wallets, nil
}

// UpdateWallet reads, updates and writes back the wallet within the same
// read-write badger transaction. The transaction is retried if it conflicts
// with a concurrent one.
func (r *walletRepositoryImpl) UpdateWallet(
	_ context.Context,
	id string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	var err error
	for i := 0; i < maxUpdateAttempts; i++ {
		err = r.updateWallet(id, updateFn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (r *walletRepositoryImpl) updateWallet(
	id string, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	return r.store.Badger().Update(func(tx *badger.Txn) error {
		var dto walletDTO
		if err := r.store.TxGet(tx, id, &dto); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
			}
			return err
		}

		w, err := dto.toDomain()
		if err != nil {
			return err
		}

		updatedWallet, err := updateFn(w)
		if err != nil {
			return err
		}

		updatedDTO, err := newWalletDTO(id, updatedWallet)
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, id, *updatedDTO)
	})
}

func (r *walletRepositoryImpl) DeleteWallet(_ context.Context, id string) error {
	if err := r.store.Delete(id, walletDTO{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
		}
		return err
	}
	return nil
}
