// Package history implements the durable transaction log and the pending
// reconciliation pass. History is best-effort: the store degrades to an
// empty log when the persistence medium is corrupt or unavailable and never
// blocks sending.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/storage"
)

const (
	// HistoryKey is the well-known key the log is serialized under.
	HistoryKey = "walletcore_transaction_history"

	// MaxRecords caps the log; oldest records are evicted first.
	MaxRecords = 100
)

// Store is a deduplicated, capped, newest-first log of transaction records.
// The log is serialized as one JSON array under HistoryKey. All mutations go
// through a load-modify-save cycle under the store mutex; within one process
// insert and status updates therefore never interleave for the same hash.
type Store struct {
	kv  storage.KV
	log *slog.Logger
	mu  sync.Mutex
}

func NewStore(kv storage.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log}
}

// load reads the full log. A missing key is an empty log; a corrupt payload
// is logged and treated as empty rather than failing the caller.
func (s *Store) load(ctx context.Context) []*domain.TransactionRecord {
	raw, err := s.kv.Get(ctx, HistoryKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("History storage unavailable, treating as empty", "error", err)
		return nil
	}

	var records []*domain.TransactionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn("History payload corrupt, treating as empty", "error", err)
		return nil
	}
	return records
}

func (s *Store) save(ctx context.Context, records []*domain.TransactionRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.kv.Set(ctx, HistoryKey, string(data)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// Insert prepends a record. Inserting a hash that already exists is a no-op;
// the log is truncated to MaxRecords afterwards, evicting the oldest.
func (s *Store) Insert(ctx context.Context, record *domain.TransactionRecord) error {
	if record == nil || record.Hash == "" {
		return fmt.Errorf("record has no hash")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	for _, existing := range records {
		if strings.EqualFold(existing.Hash, record.Hash) {
			return nil
		}
	}

	records = append([]*domain.TransactionRecord{record}, records...)
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return s.save(ctx, records)
}

// All returns the full log, newest first.
func (s *Store) All(ctx context.Context) []*domain.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// QueryByAddress returns records where address matches sender or recipient,
// case-insensitively, preserving newest-first order.
func (s *Store) QueryByAddress(ctx context.Context, address string) []*domain.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*domain.TransactionRecord
	for _, record := range s.load(ctx) {
		if record.Involves(address) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Pending returns records still awaiting a terminal status.
func (s *Store) Pending(ctx context.Context) []*domain.TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []*domain.TransactionRecord
	for _, record := range s.load(ctx) {
		if record.Status == domain.TxStatusPending {
			pending = append(pending, record)
		}
	}
	return pending
}

// UpdateStatus overwrites the status (and chain-observed fields) of the
// record with the given hash. Absent hashes and records already in a
// terminal state are no-ops: a confirmed or failed record never changes
// again.
func (s *Store) UpdateStatus(
	ctx context.Context,
	hash string,
	status domain.TxStatus,
	obs *domain.ChainObservation,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	for _, record := range records {
		if !strings.EqualFold(record.Hash, hash) {
			continue
		}
		if record.Status.Terminal() {
			return nil
		}
		record.Status = status
		if obs != nil {
			record.BlockNumber = obs.BlockNumber
			record.GasUsed = obs.GasUsed
		}
		return s.save(ctx, records)
	}
	return nil
}

// Clear empties the log entirely.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, HistoryKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
