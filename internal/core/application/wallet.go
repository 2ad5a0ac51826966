package application

import (
	"context"

	"github.com/mycitadel/citadel-wallet/internal/core/application/wallet"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/mycitadel/citadel-wallet/internal/core/ports"
	"github.com/mycitadel/citadel-wallet/pkg/stats"
)

type WalletInfo = wallet.WalletInfo

type WalletService interface {
	CreateWallet(ctx context.Context, descriptor domain.WalletDescriptor) (string, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]WalletInfo, error)
	UpdateDescriptor(
		ctx context.Context, id string, descriptor domain.WalletDescriptor,
	) (bool, error)
	AddTransactions(
		ctx context.Context, id string, psbts ...string,
	) (domain.WalletState, error)
	AddPendingTransaction(ctx context.Context, id string, psbt string) (string, error)
	ConfirmPendingTransaction(
		ctx context.Context, id string, txid string,
	) (domain.WalletState, error)
	DiscardPendingTransaction(ctx context.Context, id string, txid string) error
	Balance(ctx context.Context, id string) (domain.Sats, error)
	CloseWallet(ctx context.Context, id string) error
	Close()
}

func NewWalletService(
	repoManager ports.RepoManager, reducer domain.StateReducer,
	metrics *stats.WalletMetrics,
) (WalletService, error) {
	return wallet.NewService(repoManager, reducer, metrics)
}
