package send

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/history"
	"github.com/vietddude/walletcore/internal/infra/chain"
	"github.com/vietddude/walletcore/internal/infra/metrics"
	"github.com/vietddude/walletcore/internal/infra/rpc"
)

// Submitter dispatches confirmed drafts through the signer and records the
// resulting pending transaction. Its only callers are flows holding a
// snapshot released by a Gate.Confirm transition.
type Submitter struct {
	provider chain.Provider
	store    *history.Store
	log      *slog.Logger
}

func NewSubmitter(provider chain.Provider, store *history.Store, log *slog.Logger) *Submitter {
	if log == nil {
		log = slog.Default()
	}
	return &Submitter{provider: provider, store: store, log: log}
}

// Submit sends the snapshotted transaction. On signer rejection or network
// failure no record is created and the error carries the underlying message.
// On success a pending record is persisted; a history write failure is
// logged, not surfaced. History is best-effort and never voids a dispatched
// transaction.
func (s *Submitter) Submit(ctx context.Context, from string, snap Snapshot) (*domain.TransactionRecord, error) {
	chainName := s.provider.ChainID().Name()

	amount, err := domain.ParseDecimalAmount(snap.Draft.Amount)
	if err != nil {
		return nil, fmt.Errorf("confirmed draft has invalid amount: %w", err)
	}
	value, err := domain.DecimalToWei(amount)
	if err != nil {
		return nil, fmt.Errorf("confirmed draft has invalid amount: %w", err)
	}

	hash, err := s.provider.SendTransaction(ctx, chain.TxRequest{
		From:     from,
		To:       snap.Draft.Recipient,
		Value:    value,
		Gas:      snap.Quote.GasLimit,
		GasPrice: snap.Quote.GasPrice,
		Data:     snap.Draft.Data,
	})
	if err != nil {
		// Signer/node rejections are terminal; anything else is transport
		outcome := "error"
		if rpc.ClassifyError(err) == rpc.ActionFatal {
			outcome = "rejected"
		}
		metrics.SubmissionsTotal.WithLabelValues(chainName, outcome).Inc()
		return nil, fmt.Errorf("submit transaction: %w", err)
	}

	record := &domain.TransactionRecord{
		Hash:      hash,
		From:      domain.NormalizeAddress(from),
		To:        domain.NormalizeAddress(snap.Draft.Recipient),
		Amount:    snap.Draft.Amount,
		Status:    domain.TxStatusPending,
		Timestamp: time.Now().Unix(),
		GasPrice:  snap.Quote.GasPrice.String(),
		Direction: domain.DirectionSent,
		Token:     snap.Draft.Token,
	}

	if err := s.store.Insert(ctx, record); err != nil {
		s.log.Warn("Failed to persist transaction record",
			"hash", hash, "error", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(chainName, "ok").Inc()
	s.log.Info("Transaction submitted",
		"hash", hash,
		"to", domain.ShortAddress(record.To),
		"amount", record.Amount)

	return record, nil
}
