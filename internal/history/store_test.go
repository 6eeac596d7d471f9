package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/storage"
	"github.com/vietddude/walletcore/internal/infra/storage/memory"
)

func record(hash string, status domain.TxStatus) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		Hash:      hash,
		From:      "0x40ceeEdE9fA9ee09e594aFFb63CFc4994aF5B14e",
		To:        "0x0000000000000000000000000000000000000001",
		Amount:    "0.5",
		Status:    status,
		Timestamp: 1700000000,
		Direction: domain.DirectionSent,
	}
}

func TestInsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	first := record("0xAAA", domain.TxStatusPending)
	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Same hash again, different amount: must be a no-op
	dup := record("0xaaa", domain.TxStatusPending)
	dup.Amount = "99"
	if err := store.Insert(ctx, dup); err != nil {
		t.Fatalf("Duplicate insert failed: %v", err)
	}

	records := store.All(ctx)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Amount != "0.5" {
		t.Errorf("Duplicate insert mutated the record: amount = %s", records[0].Amount)
	}
}

func TestInsert_Eviction(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	for i := 0; i < MaxRecords+1; i++ {
		if err := store.Insert(ctx, record(fmt.Sprintf("0x%03d", i), domain.TxStatusPending)); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}

	records := store.All(ctx)
	if len(records) != MaxRecords {
		t.Fatalf("Expected %d records, got %d", MaxRecords, len(records))
	}
	// Newest first; the oldest (0x000) is gone
	if records[0].Hash != fmt.Sprintf("0x%03d", MaxRecords) {
		t.Errorf("Expected newest record first, got %s", records[0].Hash)
	}
	if records[len(records)-1].Hash != "0x001" {
		t.Errorf("Expected 0x001 as oldest survivor, got %s", records[len(records)-1].Hash)
	}
}

func TestInsert_NoHash(t *testing.T) {
	store := NewStore(memory.New(), nil)
	if err := store.Insert(context.Background(), &domain.TransactionRecord{}); err == nil {
		t.Error("Expected error for record without hash")
	}
}

func TestQueryByAddress(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	mine := record("0x1", domain.TxStatusPending)
	received := record("0x2", domain.TxStatusConfirmed)
	received.From = "0x0000000000000000000000000000000000000002"
	received.To = "0x40CEEEDE9FA9EE09E594AFFB63CFC4994AF5B14E" // Uppercase on purpose
	received.Direction = domain.DirectionReceived
	other := record("0x3", domain.TxStatusPending)
	other.From = "0x0000000000000000000000000000000000000003"
	other.To = "0x0000000000000000000000000000000000000004"

	for _, r := range []*domain.TransactionRecord{mine, received, other} {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	matched := store.QueryByAddress(ctx, "0x40ceeede9fa9ee09e594affb63cfc4994af5b14e")
	if len(matched) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(matched))
	}
	// Storage order preserved (newest first)
	if matched[0].Hash != "0x2" || matched[1].Hash != "0x1" {
		t.Errorf("Unexpected order: %s, %s", matched[0].Hash, matched[1].Hash)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	if err := store.Insert(ctx, record("0x1", domain.TxStatusPending)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	obs := &domain.ChainObservation{BlockNumber: 42, GasUsed: 21000}
	if err := store.UpdateStatus(ctx, "0x1", domain.TxStatusConfirmed, obs); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	records := store.All(ctx)
	if records[0].Status != domain.TxStatusConfirmed {
		t.Errorf("Expected confirmed, got %s", records[0].Status)
	}
	if records[0].BlockNumber != 42 || records[0].GasUsed != 21000 {
		t.Errorf("Chain-observed fields not applied: %+v", records[0])
	}
	// Immutable fields untouched
	if records[0].Amount != "0.5" || records[0].Timestamp != 1700000000 {
		t.Errorf("Immutable fields changed: %+v", records[0])
	}
}

func TestUpdateStatus_AbsentHash(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	if err := store.UpdateStatus(ctx, "0xmissing", domain.TxStatusConfirmed, nil); err != nil {
		t.Errorf("Expected no-op for absent hash, got %v", err)
	}
	if got := store.All(ctx); len(got) != 0 {
		t.Errorf("Expected empty store, got %d records", len(got))
	}
}

func TestUpdateStatus_TerminalIsFinal(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	if err := store.Insert(ctx, record("0x1", domain.TxStatusPending)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, "0x1", domain.TxStatusConfirmed, nil); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	// Terminal states never change, neither back to pending nor to the
	// other terminal state.
	for _, next := range []domain.TxStatus{domain.TxStatusPending, domain.TxStatusFailed} {
		if err := store.UpdateStatus(ctx, "0x1", next, nil); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		if got := store.All(ctx)[0].Status; got != domain.TxStatusConfirmed {
			t.Errorf("Terminal status changed to %s", got)
		}
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New(), nil)

	_ = store.Insert(ctx, record("0x1", domain.TxStatusPending))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.All(ctx); len(got) != 0 {
		t.Errorf("Expected empty store after clear, got %d", len(got))
	}
}

func TestCorruptPayload_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	_ = kv.Set(ctx, HistoryKey, "{not json")

	store := NewStore(kv, nil)
	if got := store.All(ctx); len(got) != 0 {
		t.Errorf("Expected empty log for corrupt payload, got %d", len(got))
	}

	// Inserting over a corrupt payload starts a fresh log
	if err := store.Insert(ctx, record("0x1", domain.TxStatusPending)); err != nil {
		t.Fatalf("Insert over corrupt payload failed: %v", err)
	}
	if got := store.All(ctx); len(got) != 1 {
		t.Errorf("Expected 1 record, got %d", len(got))
	}
}

// brokenKV fails every operation, simulating an unavailable medium.
type brokenKV struct{}

func (brokenKV) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("storage offline")
}
func (brokenKV) Set(ctx context.Context, key, value string) error {
	return errors.New("storage offline")
}
func (brokenKV) Remove(ctx context.Context, key string) error { return errors.New("storage offline") }
func (brokenKV) Ping(ctx context.Context) error               { return errors.New("storage offline") }
func (brokenKV) Close() error                                 { return nil }

var _ storage.KV = brokenKV{}

func TestUnavailableStorage_QueriesDegrade(t *testing.T) {
	ctx := context.Background()
	store := NewStore(brokenKV{}, nil)

	if got := store.All(ctx); got != nil {
		t.Errorf("Expected nil from unavailable storage, got %v", got)
	}
	if got := store.QueryByAddress(ctx, "0x1"); got != nil {
		t.Errorf("Expected nil from unavailable storage, got %v", got)
	}
	// Writes report the failure but never panic
	if err := store.Insert(ctx, record("0x1", domain.TxStatusPending)); err == nil {
		t.Error("Expected error from unavailable storage")
	}
}
