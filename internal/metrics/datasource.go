package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dataSourceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_data_source",
		Name:      "operations_total",
		Help:      "Count of data source operations.",
	}, []string{"operation", "source", "network", "status"})
	dataSourceRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "proof_data_source",
		Name:      "operation_duration_seconds",
		Help:      "Duration of data source operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "source", "network", "status"})
)

// DataSource tracks metrics for calls to remote indexers and nodes.
type DataSource struct {
	source  string
	network model.Network
}

// NewDataSource constructs a metrics collector for one data source.
func NewDataSource(source string, network model.Network) *DataSource {
	if source == "" {
		source = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &DataSource{source: source, network: network}
}

// Observe records a single call outcome and duration.
func (m DataSource) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	dataSourceRequestsTotal.WithLabelValues(operation, m.source, string(m.network), status).Inc()
	dataSourceRequestDuration.WithLabelValues(operation, m.source, string(m.network), status).Observe(time.Since(started).Seconds())
}
