package control

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/vietddude/walletcore/internal/core/config"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewWallet_DefaultConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Wallet.Address = "0x0000000000000000000000000000000000000001"

	w, err := NewWallet(cfg, nil)
	if err != nil {
		t.Fatalf("NewWallet failed: %v", err)
	}

	if w.Address() != cfg.Wallet.Address {
		t.Errorf("Address = %s, want %s", w.Address(), cfg.Wallet.Address)
	}
	if w.History() == nil || w.Book() == nil || w.Provider() == nil {
		t.Error("Wallet components not wired")
	}

	flow := w.NewSendFlow()
	if flow.Owner() != cfg.Wallet.Address {
		t.Errorf("Flow owner = %s, want wallet address", flow.Owner())
	}
}

func TestOpenStorage_Backends(t *testing.T) {
	ctx := context.Background()

	kv, err := openStorage(config.StorageConfig{Backend: "memory"}, discardLog())
	if err != nil {
		t.Fatalf("memory backend failed: %v", err)
	}
	if err := kv.Ping(ctx); err != nil {
		t.Errorf("memory Ping failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "wallet.json")
	kv, err = openStorage(config.StorageConfig{Backend: "file", Path: path}, discardLog())
	if err != nil {
		t.Fatalf("file backend failed: %v", err)
	}
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Errorf("file Set failed: %v", err)
	}

	if _, err := openStorage(config.StorageConfig{Backend: "file"}, discardLog()); err == nil {
		t.Error("file backend without path must fail")
	}
	if _, err := openStorage(config.StorageConfig{Backend: "cassandra"}, discardLog()); err == nil {
		t.Error("unknown backend must fail")
	}
}
