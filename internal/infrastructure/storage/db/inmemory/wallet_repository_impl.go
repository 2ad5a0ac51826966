package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mycitadel/citadel-wallet/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage. Wallets are copied
// in and out so that callers never share state with the store.
type WalletRepositoryImpl struct {
	wallets map[string]*domain.Wallet

	lock *sync.RWMutex
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl
func NewWalletRepositoryImpl() *WalletRepositoryImpl {
	return &WalletRepositoryImpl{
		wallets: map[string]*domain.Wallet{},
		lock:    &sync.RWMutex{},
	}
}

func (r *WalletRepositoryImpl) AddWallet(
	_ context.Context, id string, wallet *domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[id]; ok {
		return fmt.Errorf("%w: %s", domain.ErrWalletAlreadyExists, id)
	}

	w, err := cloneWallet(wallet)
	if err != nil {
		return err
	}
	r.wallets[id] = w
	return nil
}

func (r *WalletRepositoryImpl) GetWallet(
	_ context.Context, id string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	w, ok := r.wallets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
	}
	return cloneWallet(w)
}

func (r *WalletRepositoryImpl) GetAllWallets(
	_ context.Context,
) (map[string]*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallets := make(map[string]*domain.Wallet, len(r.wallets))
	for id, w := range r.wallets {
		wallet, err := cloneWallet(w)
		if err != nil {
			return nil, err
		}
		wallets[id] = wallet
	}
	return wallets, nil
}

// UpdateWallet runs the update function on a copy of the wallet and stores
// the result only if the function succeeds.
func (r *WalletRepositoryImpl) UpdateWallet(
	_ context.Context,
	id string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, ok := r.wallets[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
	}
	w, err := cloneWallet(current)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(w)
	if err != nil {
		return err
	}

	stored, err := cloneWallet(updatedWallet)
	if err != nil {
		return err
	}
	r.wallets[id] = stored
	return nil
}

func (r *WalletRepositoryImpl) DeleteWallet(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrWalletNotFound, id)
	}
	delete(r.wallets, id)
	return nil
}

func cloneWallet(w *domain.Wallet) (*domain.Wallet, error) {
	if w == nil {
		return nil, fmt.Errorf("wallet must not be null")
	}
	return domain.RestoreWallet(w.ToDescriptor(), w.State(), w.History(), w.Wip())
}
