// Package control wires the wallet daemon together: storage backend, RPC
// client, history, reconciler, address book and the health server.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/vietddude/walletcore/internal/addressbook"
	"github.com/vietddude/walletcore/internal/core/config"
	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/history"
	"github.com/vietddude/walletcore/internal/infra/chain"
	"github.com/vietddude/walletcore/internal/infra/chain/evm"
	"github.com/vietddude/walletcore/internal/infra/health"
	"github.com/vietddude/walletcore/internal/infra/rpc"
	"github.com/vietddude/walletcore/internal/infra/storage"
	"github.com/vietddude/walletcore/internal/infra/storage/file"
	"github.com/vietddude/walletcore/internal/infra/storage/memory"
	"github.com/vietddude/walletcore/internal/infra/storage/postgres"
	redisstore "github.com/vietddude/walletcore/internal/infra/storage/redis"
	"github.com/vietddude/walletcore/internal/send"
)

// Wallet is the main application struct managing the daemon lifecycle.
type Wallet struct {
	cfg          *config.AppConfig
	kv           storage.KV
	rpcClient    *rpc.Client
	provider     chain.Provider
	history      *history.Store
	book         *addressbook.Book
	reconciler   *history.Reconciler
	estimator    *send.Estimator
	submitter    *send.Submitter
	healthServer *health.Server
	log          *slog.Logger
}

// NewWallet creates a Wallet instance with all dependencies initialized.
func NewWallet(cfg *config.AppConfig, log *slog.Logger) (*Wallet, error) {
	if log == nil {
		log = slog.Default()
	}

	// 1. Storage backend
	kv, err := openStorage(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	// 2. RPC client over the configured endpoints
	providers := make([]rpc.Provider, 0, len(cfg.Chain.Endpoints))
	for _, ep := range cfg.Chain.Endpoints {
		providers = append(providers, rpc.NewHTTPProvider(ep.Name, ep.URL, cfg.Chain.RequestTimeout))
	}
	rpcClient, err := rpc.NewClient(cfg.Chain.ID.Name(), providers, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init rpc client: %w", err)
	}

	// 3. Chain adapter and domain components
	provider := evm.NewAdapter(cfg.Chain.ID, rpcClient)
	historyStore := history.NewStore(kv, log)
	book := addressbook.NewBook(kv, log)
	reconciler := history.NewReconciler(historyStore, provider, log)
	estimator := send.NewEstimator(provider, log)
	submitter := send.NewSubmitter(provider, historyStore, log)

	// 4. Health server
	healthServer := health.NewServer(cfg.Server.Port,
		health.CheckerFunc{Label: "rpc", Fn: func(ctx context.Context) error {
			if !rpcClient.Healthy() {
				return fmt.Errorf("all endpoints failing")
			}
			return nil
		}},
		health.CheckerFunc{Label: "storage", Fn: kv.Ping},
	)

	return &Wallet{
		cfg:          cfg,
		kv:           kv,
		rpcClient:    rpcClient,
		provider:     provider,
		history:      historyStore,
		book:         book,
		reconciler:   reconciler,
		estimator:    estimator,
		submitter:    submitter,
		healthServer: healthServer,
		log:          log,
	}, nil
}

func openStorage(cfg config.StorageConfig, log *slog.Logger) (storage.KV, error) {
	switch cfg.Backend {
	case "", "memory":
		log.Info("Using memory storage")
		return memory.New(), nil

	case "file":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file storage requires a path")
		}
		store, err := file.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file storage: %w", err)
		}
		log.Info("Using file storage", "path", cfg.Path)
		return store, nil

	case "redis":
		store, err := redisstore.New(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		log.Info("Using Redis storage")
		return store, nil

	case "postgres":
		store, err := postgres.New(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		// Migrations live in "migrations" relative to CWD
		if err := goose.Up(store.DB(), "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}
		log.Info("Using PostgreSQL storage")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Start starts the health server and the reconcile loop.
func (w *Wallet) Start(ctx context.Context) error {
	go func() {
		if err := w.healthServer.Start(); err != nil {
			w.log.Error("Health server failed", "error", err)
		}
	}()

	go w.runReconcileLoop(ctx)

	w.log.Info("Wallet daemon started",
		"chain", w.cfg.Chain.ID.Name(),
		"port", w.cfg.Server.Port,
		"reconcile_interval", w.cfg.Reconcile.Interval)
	return nil
}

// Stop stops the daemon and releases the storage backend.
func (w *Wallet) Stop(ctx context.Context) error {
	w.log.Info("Stopping wallet daemon...")

	if err := w.kv.Close(); err != nil {
		w.log.Warn("Failed to close storage", "error", err)
	}
	return w.healthServer.Stop(ctx)
}

func (w *Wallet) runReconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Reconcile.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.reconciler.Run(ctx)
		}
	}
}

// Reconcile runs one reconciliation pass on demand.
func (w *Wallet) Reconcile(ctx context.Context) int {
	return w.reconciler.Run(ctx)
}

// NewSendFlow opens a send session for the configured wallet address.
func (w *Wallet) NewSendFlow() *send.Flow {
	return send.NewFlow(w.cfg.Wallet.Address, w.provider, w.estimator, w.submitter, w.log)
}

// History exposes the transaction history store.
func (w *Wallet) History() *history.Store { return w.history }

// Book exposes the address book.
func (w *Wallet) Book() *addressbook.Book { return w.book }

// Provider exposes the chain provider.
func (w *Wallet) Provider() chain.Provider { return w.provider }

// Address returns the configured wallet address.
func (w *Wallet) Address() string { return w.cfg.Wallet.Address }

// Balance is one line of the balance report.
type Balance struct {
	Symbol string
	Amount decimal.Decimal
}

// Balances returns the native balance followed by each configured token's.
// A token lookup failure is reported in the log and skips the token rather
// than failing the whole report.
func (w *Wallet) Balances(ctx context.Context) ([]Balance, error) {
	wei, err := w.provider.Balance(ctx, w.cfg.Wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("fetch native balance: %w", err)
	}
	balances := []Balance{{
		Symbol: w.cfg.Chain.ID.NativeSymbol(),
		Amount: domain.WeiToDecimal(wei),
	}}

	for _, t := range w.cfg.Tokens {
		raw, err := w.provider.TokenBalance(ctx, t.Address, w.cfg.Wallet.Address)
		if err != nil {
			w.log.Warn("Token balance lookup failed", "token", t.Symbol, "error", err)
			continue
		}
		balances = append(balances, Balance{
			Symbol: t.Symbol,
			Amount: domain.TokenToDecimal(raw, t.Decimals),
		})
	}
	return balances, nil
}
