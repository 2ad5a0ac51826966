package domain

import "context"

// WalletRepository is the abstraction for any kind of database intended to
// persist Wallets, each identified by an id.
type WalletRepository interface {
	// AddWallet adds a new wallet to the repository.
	AddWallet(ctx context.Context, id string, wallet *Wallet) error
	// GetWallet returns the wallet with the given id.
	GetWallet(ctx context.Context, id string) (*Wallet, error)
	// GetAllWallets returns all wallets indexed by id.
	GetAllWallets(ctx context.Context) (map[string]*Wallet, error)
	// UpdateWallet updates the state of a wallet. The closure is run with
	// exclusive access to the wallet and its result is committed only if it
	// doesn't fail, so that no reader ever sees a partial update.
	UpdateWallet(
		ctx context.Context,
		id string, updateFn func(w *Wallet) (*Wallet, error),
	) error
	// DeleteWallet removes a wallet from the repository.
	DeleteWallet(ctx context.Context, id string) error
}
