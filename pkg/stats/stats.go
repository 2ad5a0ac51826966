package stats

import (
	"bufio"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const namespace = "citadel"

const (
	TxKindHistory = "history"
	TxKindWip     = "wip"
)

// WalletMetrics collects the metrics of the wallet service.
type WalletMetrics struct {
	Wallets           prometheus.Gauge
	DescriptorResets  prometheus.Counter
	Transactions      *prometheus.CounterVec
	RecomputeFailures prometheus.Counter
}

// NewWalletMetrics creates the wallet metrics and registers them with the
// given registerer, if any.
func NewWalletMetrics(reg prometheus.Registerer) (*WalletMetrics, error) {
	m := &WalletMetrics{
		Wallets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wallets",
			Help:      "Number of open wallets.",
		}),
		DescriptorResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "descriptor_resets_total",
			Help:      "Number of descriptor changes that reset a wallet.",
		}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_transactions_total",
			Help:      "Number of transactions added to wallets by kind.",
		}, []string{"kind"}),
		RecomputeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_recompute_failures_total",
			Help:      "Number of aborted balance recomputations.",
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{
		m.Wallets, m.DescriptorResets, m.Transactions, m.RecomputeFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DumpMetrics appends the metrics collected by the gatherer to the file at
// the given path.
func DumpMetrics(gatherer prometheus.Gatherer, path string) error {
	file, err := os.OpenFile(
		path,
		os.O_APPEND|os.O_CREATE|os.O_RDWR,
		0644,
	)
	if err != nil {
		return err
	}
	defer file.Close()
	writer := bufio.NewWriter(file)

	metricFamily, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	log.Debugf("dumped %d metric families to %s", len(metricFamily), path)
	return writer.Flush()
}
