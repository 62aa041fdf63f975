package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	assemblerAssembleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_assembler",
		Name:      "assemble_total",
		Help:      "Count of proof assemblies by outcome.",
	}, []string{"network", "outcome"})

	assemblerAssembleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_assembler",
		Name:      "assemble_duration_seconds",
		Help:      "Duration of a proof assembly.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 60},
	}, []string{"network", "outcome"})

	assemblerLocateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_assembler",
		Name:      "locate_duration_seconds",
		Help:      "Duration of resolving the second chain block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	assemblerBlockTxIDPages = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_assembler",
		Name:      "block_txid_pages",
		Help:      "Number of pages fetched to list a block's transaction ids.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"network"})

	assemblerBlockTxIDs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_assembler",
		Name:      "block_txids",
		Help:      "Number of transactions in proven blocks.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"network"})
)

// Assembler tracks metrics for proof assembly.
type Assembler struct {
	network model.Network
}

// NewAssembler constructs an Assembler metrics collector.
func NewAssembler(network model.Network) *Assembler {
	if network == "" {
		network = "unknown"
	}
	return &Assembler{network: network}
}

// ObserveAssemble records one assembly; outcome is "success" or the failure kind.
func (m Assembler) ObserveAssemble(outcome string, started time.Time) {
	assemblerAssembleTotal.WithLabelValues(string(m.network), outcome).Inc()
	assemblerAssembleDuration.WithLabelValues(string(m.network), outcome).
		Observe(time.Since(started).Seconds())
}

// ObserveLocate records the second chain block resolution.
func (m Assembler) ObserveLocate(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	assemblerLocateDuration.WithLabelValues(string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveBlockTxIDs records how a block's id list was fetched.
func (m Assembler) ObserveBlockTxIDs(pages, txids int) {
	assemblerBlockTxIDPages.WithLabelValues(string(m.network)).Observe(float64(pages))
	assemblerBlockTxIDs.WithLabelValues(string(m.network)).Observe(float64(txids))
}
