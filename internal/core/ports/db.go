package ports

import "github.com/mycitadel/citadel-wallet/internal/core/domain"

// RepoManager interface defines the repositories of the wallet daemon.
type RepoManager interface {
	WalletRepository() domain.WalletRepository

	Close()
}
