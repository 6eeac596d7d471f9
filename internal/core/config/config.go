package config

import (
	"time"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/storage/postgres"
	redisstore "github.com/vietddude/walletcore/internal/infra/storage/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Chain     ChainConfig     `yaml:"chain"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Tokens    []TokenConfig   `yaml:"tokens"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// ChainConfig holds settings for the chain the wallet operates on.
type ChainConfig struct {
	ID             domain.ChainID   `yaml:"id"`
	Endpoints      []EndpointConfig `yaml:"endpoints"`
	RequestTimeout time.Duration    `yaml:"request_timeout"`
}

// EndpointConfig holds settings for one RPC endpoint. Endpoints are tried in
// order; later ones are failover targets.
type EndpointConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// WalletConfig identifies the account the daemon operates for.
type WalletConfig struct {
	Address string `yaml:"address"`
}

// TokenConfig registers an ERC-20 token for balance display.
type TokenConfig struct {
	Address  string `yaml:"address"`
	Symbol   string `yaml:"symbol"`
	Decimals int32  `yaml:"decimals"`
}

// ReconcileConfig controls the pending-transaction sweep.
type ReconcileConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// StorageConfig selects the KV backend the history and address book live in.
type StorageConfig struct {
	Backend  string            `yaml:"backend"` // memory, file, redis, postgres
	Path     string            `yaml:"path"`    // file backend only
	Redis    redisstore.Config `yaml:"redis"`
	Database postgres.Config   `yaml:"database"`
}
