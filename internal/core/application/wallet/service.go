package wallet

import (
	"context"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/google/uuid"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/mycitadel/citadel-wallet/internal/core/ports"
	"github.com/mycitadel/citadel-wallet/pkg/stats"
	log "github.com/sirupsen/logrus"
)

// Service is the controller owning the wallets. Every mutation goes through
// the repository UpdateWallet, which grants the exclusive access the wallet
// aggregate expects.
type Service struct {
	repoManager ports.RepoManager
	reducer     domain.StateReducer
	metrics     *stats.WalletMetrics
}

func NewService(
	repoManager ports.RepoManager, reducer domain.StateReducer,
	metrics *stats.WalletMetrics,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if reducer == nil {
		reducer = domain.BalanceReducer{}
	}
	if metrics == nil {
		m, err := stats.NewWalletMetrics(nil)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	wallets, err := repoManager.WalletRepository().GetAllWallets(
		context.Background(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallets: %w", err)
	}
	metrics.Wallets.Set(float64(len(wallets)))

	return &Service{repoManager, reducer, metrics}, nil
}

// CreateWallet validates the descriptor and stores a new wallet for it,
// returning the wallet id.
func (s *Service) CreateWallet(
	ctx context.Context, descriptor domain.WalletDescriptor,
) (string, error) {
	if err := descriptor.Validate(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	if err := s.walletRepository().AddWallet(
		ctx, id, domain.NewWallet(descriptor),
	); err != nil {
		return "", err
	}

	s.metrics.Wallets.Inc()
	log.WithFields(log.Fields{
		"wallet": id,
		"format": descriptor.Format().String(),
	}).Info("wallet created")
	return id, nil
}

func (s *Service) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return s.walletRepository().GetWallet(ctx, id)
}

// ListWallets returns the summary of all wallets sorted by id.
func (s *Service) ListWallets(ctx context.Context) ([]WalletInfo, error) {
	wallets, err := s.walletRepository().GetAllWallets(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]WalletInfo, 0, len(wallets))
	for id, w := range wallets {
		list = append(list, newWalletInfo(id, w))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// UpdateDescriptor replaces the descriptor of a wallet, dropping its state,
// history and wip. It returns false without touching the wallet if the
// given descriptor equals the current one. An invalid descriptor is rejected
// and the current one kept.
func (s *Service) UpdateDescriptor(
	ctx context.Context, id string, descriptor domain.WalletDescriptor,
) (bool, error) {
	if err := descriptor.Validate(); err != nil {
		return false, err
	}

	changed := false
	if err := s.walletRepository().UpdateWallet(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			changed = false
			if w.AsDescriptor().Equal(descriptor) {
				return w, nil
			}
			w.SetDescriptor(descriptor)
			changed = true
			return w, nil
		},
	); err != nil {
		return false, err
	}

	if changed {
		s.metrics.DescriptorResets.Inc()
		log.WithFields(log.Fields{
			"wallet": id,
			"format": descriptor.Format().String(),
		}).Warn("descriptor replaced, history and pending transactions dropped")
	}
	return changed, nil
}

// AddTransactions appends the given base64 psbts to the wallet history and
// recomputes its state. Nothing is committed if the recompute fails.
func (s *Service) AddTransactions(
	ctx context.Context, id string, psbts ...string,
) (domain.WalletState, error) {
	packets := make([]*psbt.Packet, 0, len(psbts))
	for _, b64 := range psbts {
		p, err := decodePsbt(b64)
		if err != nil {
			return domain.WalletState{}, err
		}
		packets = append(packets, p)
	}

	var state domain.WalletState
	if err := s.walletRepository().UpdateWallet(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.AppendHistory(packets...); err != nil {
				return nil, err
			}
			if err := s.recompute(id, w); err != nil {
				return nil, err
			}
			state = w.State()
			return w, nil
		},
	); err != nil {
		return domain.WalletState{}, err
	}

	s.metrics.Transactions.WithLabelValues(stats.TxKindHistory).Add(float64(len(packets)))
	log.WithField("wallet", id).Debugf(
		"added %d transactions to history, balance %s", len(packets), state.Balance,
	)
	return state, nil
}

// AddPendingTransaction adds a base64 psbt to the wallet work in progress
// and returns its unsigned txid.
func (s *Service) AddPendingTransaction(
	ctx context.Context, id string, b64 string,
) (string, error) {
	p, err := decodePsbt(b64)
	if err != nil {
		return "", err
	}

	if err := s.walletRepository().UpdateWallet(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.AddWip(p); err != nil {
				return nil, err
			}
			return w, nil
		},
	); err != nil {
		return "", err
	}

	txid := domain.PacketTxid(p).String()
	s.metrics.Transactions.WithLabelValues(stats.TxKindWip).Inc()
	log.WithFields(log.Fields{"wallet": id, "txid": txid}).Debug("added pending transaction")
	return txid, nil
}

// ConfirmPendingTransaction moves a pending transaction to the history and
// recomputes the wallet state.
func (s *Service) ConfirmPendingTransaction(
	ctx context.Context, id string, txid string,
) (domain.WalletState, error) {
	hash, err := parseTxid(txid)
	if err != nil {
		return domain.WalletState{}, err
	}

	var state domain.WalletState
	if err := s.walletRepository().UpdateWallet(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.ConfirmWip(hash); err != nil {
				return nil, err
			}
			if err := s.recompute(id, w); err != nil {
				return nil, err
			}
			state = w.State()
			return w, nil
		},
	); err != nil {
		return domain.WalletState{}, err
	}

	s.metrics.Transactions.WithLabelValues(stats.TxKindHistory).Inc()
	log.WithFields(log.Fields{"wallet": id, "txid": txid}).Debug("confirmed pending transaction")
	return state, nil
}

// DiscardPendingTransaction drops a pending transaction.
func (s *Service) DiscardPendingTransaction(
	ctx context.Context, id string, txid string,
) error {
	hash, err := parseTxid(txid)
	if err != nil {
		return err
	}

	return s.walletRepository().UpdateWallet(
		ctx, id, func(w *domain.Wallet) (*domain.Wallet, error) {
			if err := w.DiscardWip(hash); err != nil {
				return nil, err
			}
			return w, nil
		},
	)
}

func (s *Service) Balance(ctx context.Context, id string) (domain.Sats, error) {
	w, err := s.walletRepository().GetWallet(ctx, id)
	if err != nil {
		return 0, err
	}
	return w.State().Balance, nil
}

// CloseWallet removes the wallet from the store.
func (s *Service) CloseWallet(ctx context.Context, id string) error {
	if err := s.walletRepository().DeleteWallet(ctx, id); err != nil {
		return err
	}

	s.metrics.Wallets.Dec()
	log.WithField("wallet", id).Info("wallet closed")
	return nil
}

func (s *Service) Close() {
	s.repoManager.Close()
}

func (s *Service) recompute(id string, w *domain.Wallet) error {
	if err := w.Recompute(s.reducer); err != nil {
		s.metrics.RecomputeFailures.Inc()
		log.WithError(err).WithField("wallet", id).Warn("failed to recompute wallet state")
		return err
	}
	return nil
}

func (s *Service) walletRepository() domain.WalletRepository {
	return s.repoManager.WalletRepository()
}
