package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/vietddude/walletcore/internal/core/domain"
)

// DefaultEndpoint is the public Ethereum RPC used when no endpoints are
// configured.
const DefaultEndpoint = "https://ethereum-rpc.publicnode.com"

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a runnable configuration without a config file: Ethereum
// mainnet over the public endpoint, in-memory storage.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Chain.ID == "" {
		cfg.Chain.ID = domain.ChainIDEthereum
	}
	if len(cfg.Chain.Endpoints) == 0 {
		cfg.Chain.Endpoints = []EndpointConfig{{Name: "publicnode", URL: DefaultEndpoint}}
	}
	for i := range cfg.Chain.Endpoints {
		if cfg.Chain.Endpoints[i].Name == "" {
			cfg.Chain.Endpoints[i].Name = fmt.Sprintf("endpoint-%d", i)
		}
	}
	if cfg.Chain.RequestTimeout == 0 {
		cfg.Chain.RequestTimeout = 10 * time.Second
	}
	if cfg.Reconcile.Interval == 0 {
		cfg.Reconcile.Interval = 15 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
}
