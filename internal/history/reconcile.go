package history

import (
	"context"
	"log/slog"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/chain"
	"github.com/vietddude/walletcore/internal/infra/metrics"
)

// Reconciler advances pending records toward a terminal state by consulting
// the chain. Each Run is one explicit pass; it is safe to invoke repeatedly
// and concurrently since status overwrites are idempotent and terminal
// states are immutable in the store.
type Reconciler struct {
	store    *Store
	provider chain.Provider
	log      *slog.Logger
}

func NewReconciler(store *Store, provider chain.Provider, log *slog.Logger) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{store: store, provider: provider, log: log}
}

// Run sweeps all pending records once. A failed lookup leaves that record
// pending for the next pass and never aborts the rest. Returns the number of
// records moved to a terminal state.
func (r *Reconciler) Run(ctx context.Context) int {
	chainName := r.provider.ChainID().Name()
	metrics.ReconcilePassesTotal.WithLabelValues(chainName).Inc()

	pending := r.store.Pending(ctx)
	metrics.PendingRecords.WithLabelValues(chainName).Set(float64(len(pending)))
	if len(pending) == 0 {
		return 0
	}

	updated := 0
	for _, record := range pending {
		select {
		case <-ctx.Done():
			return updated
		default:
		}

		receipt, err := r.provider.TransactionReceipt(ctx, record.Hash)
		if err != nil {
			r.log.Warn("Receipt lookup failed, will retry next pass",
				"hash", record.Hash, "error", err)
			continue
		}
		if receipt == nil {
			continue // Not mined yet
		}

		status := domain.TxStatusConfirmed
		if !receipt.Succeeded() {
			status = domain.TxStatusFailed
		}
		obs := &domain.ChainObservation{
			BlockNumber: receipt.BlockNumber,
			GasUsed:     receipt.GasUsed,
		}

		if err := r.store.UpdateStatus(ctx, record.Hash, status, obs); err != nil {
			r.log.Warn("Failed to persist status transition",
				"hash", record.Hash, "status", status, "error", err)
			continue
		}

		metrics.ReconcileTransitionsTotal.WithLabelValues(chainName, string(status)).Inc()
		r.log.Info("Transaction reached terminal state",
			"hash", record.Hash, "status", status, "block", receipt.BlockNumber)
		updated++
	}

	metrics.PendingRecords.WithLabelValues(chainName).Set(float64(len(pending) - updated))
	return updated
}
