package application

import (
	"fmt"

	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/mycitadel/citadel-wallet/internal/core/ports"
	dbbadger "github.com/mycitadel/citadel-wallet/internal/infrastructure/storage/db/badger"
	"github.com/mycitadel/citadel-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/mycitadel/citadel-wallet/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

type Config struct {
	DBType   string
	DBConfig interface{}

	// Registerer is where wallet metrics are registered, nil disables the
	// registration.
	Registerer prometheus.Registerer
	// Reducer computes wallet states, defaults to domain.BalanceReducer.
	Reducer domain.StateReducer

	repo   ports.RepoManager
	wallet WalletService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("unsupported db type '%s'", c.DBType)
	}
	if c.DBType == DBBadger {
		if datadir, ok := c.DBConfig.(string); !ok || datadir == "" {
			return fmt.Errorf("badger db requires a datadir")
		}
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.walletService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) WalletService() WalletService {
	svc, _ := c.walletService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.StandardLogger())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("unsupported db type '%s'", c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) walletService() (WalletService, error) {
	if c.wallet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		metrics, err := stats.NewWalletMetrics(c.Registerer)
		if err != nil {
			return nil, err
		}
		wallet, err := NewWalletService(repo, c.Reducer, metrics)
		if err != nil {
			return nil, err
		}
		c.wallet = wallet
	}
	return c.wallet, nil
}
