package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsTotal tracks transaction submissions per chain and outcome
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletcore_submissions_total",
			Help: "Total number of transaction submissions",
		},
		[]string{"chain", "outcome"},
	)

	// ReconcilePassesTotal tracks reconciliation passes per chain
	ReconcilePassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletcore_reconcile_passes_total",
			Help: "Total number of pending-transaction reconciliation passes",
		},
		[]string{"chain"},
	)

	// ReconcileTransitionsTotal tracks status transitions applied by reconciliation
	ReconcileTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletcore_reconcile_transitions_total",
			Help: "Total number of record status transitions applied",
		},
		[]string{"chain", "status"},
	)

	// PendingRecords tracks the number of records still awaiting a receipt
	PendingRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "walletcore_pending_records",
			Help: "Number of history records in pending status",
		},
		[]string{"chain"},
	)

	// RPCCallsTotal tracks RPC calls per chain and method
	RPCCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletcore_rpc_calls_total",
			Help: "Total number of RPC calls",
		},
		[]string{"chain", "provider", "method"},
	)

	// RPCErrorsTotal tracks RPC errors per chain and provider
	RPCErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "walletcore_rpc_errors_total",
			Help: "Total number of RPC errors",
		},
		[]string{"chain", "provider", "error_type"},
	)

	// RPCLatency tracks RPC call latency
	RPCLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "walletcore_rpc_latency_seconds",
			Help:    "RPC call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"chain", "provider", "method"},
	)
)
