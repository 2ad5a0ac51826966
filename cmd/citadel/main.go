package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mycitadel/citadel-wallet/internal/config"
	"github.com/mycitadel/citadel-wallet/internal/core/application"
	"github.com/mycitadel/citadel-wallet/pkg/stats"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "citadel"
	app.Usage = "Command line interface for managing citadel wallets"
	app.Before = func(*cli.Context) error {
		if err := config.InitConfig(); err != nil {
			return err
		}
		log.SetLevel(config.GetLogLevel())
		return nil
	}
	app.Commands = append(
		app.Commands,
		&create,
		&list,
		&show,
		&setdescriptor,
		&addpsbt,
		&confirm,
		&discard,
		&closewallet,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// getWalletService opens the wallet store configured through env vars. The
// returned cleanup closes the store and dumps the collected metrics, if a
// stats file is configured.
func getWalletService() (application.WalletService, func(), error) {
	appConfig := config.GetApplicationConfig()

	statsFile := config.GetString(config.StatsFileKey)
	var registry *prometheus.Registry
	if statsFile != "" {
		registry = prometheus.NewRegistry()
		appConfig.Registerer = registry
	}

	if err := appConfig.Validate(); err != nil {
		return nil, nil, err
	}
	svc := appConfig.WalletService()

	cleanup := func() {
		svc.Close()
		if registry == nil {
			return
		}
		if err := stats.DumpMetrics(registry, statsFile); err != nil {
			log.WithError(err).Warn("failed to dump metrics")
		}
	}
	return svc, cleanup, nil
}

func printJSON(resp interface{}) {
	b, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}
	fmt.Println(string(b))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[citadel] %v\n", err)
	}
	os.Exit(1)
}
