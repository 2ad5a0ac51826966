package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/mycitadel/citadel-wallet/internal/core/application"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	log "github.com/sirupsen/logrus"

	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the wallets
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network new wallets are created for: bitcoin, testnet,
	// signet or regtest
	NetworkKey = "NETWORK"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// DefaultFormatKey is the wallet format used when none is given, either a
	// purpose name (ie. bip84) or a descriptor format (ie. descriptor:segwit)
	DefaultFormatKey = "DEFAULT_FORMAT"
	// StatsFileKey is the file where metrics are dumped on exit, if set
	StatsFileKey = "STATS_FILE"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("citadel", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("CITADEL")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(NetworkKey, domain.DefaultNetwork().String())
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(DefaultFormatKey, domain.DefaultWalletFormat().String())

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetNetwork returns the configured network. The value is validated by
// InitConfig.
func GetNetwork() domain.Network {
	net, _ := domain.ParseNetwork(GetString(NetworkKey))
	return net
}

// GetDefaultFormat returns the configured default wallet format. The value
// is validated by InitConfig.
func GetDefaultFormat() domain.WalletFormat {
	format, _ := domain.ParseWalletFormat(GetString(DefaultFormatKey))
	return format
}

// GetApplicationConfig returns the config of the application services.
func GetApplicationConfig() *application.Config {
	return &application.Config{
		DBType:   GetString(DBTypeKey),
		DBConfig: GetDbDir(),
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, err := log.ParseLevel(log.Level(GetInt(LogLevelKey)).String()); err != nil {
		return fmt.Errorf("invalid log level: %s", err)
	}

	if _, err := domain.ParseNetwork(GetString(NetworkKey)); err != nil {
		return err
	}

	format, err := domain.ParseWalletFormat(GetString(DefaultFormatKey))
	if err != nil {
		return err
	}
	if !format.IsValid() {
		return fmt.Errorf("%s: %s", DefaultFormatKey, domain.ErrInvalidFormat)
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("unsupported db type '%s'", dbType)
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) != application.DBBadger {
		return nil
	}
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
