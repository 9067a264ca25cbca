// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Protocol rules: fixed per network, must match across all nodes
//   - Node settings: runtime configuration, can vary per node
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds node-specific runtime configuration.
// These settings can vary between nodes without breaking consensus.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Mempool
	Mempool MempoolConfig

	// RPC server
	RPC RPCConfig

	// Storage backend
	Storage StorageConfig

	// Logging
	Log LogConfig
}

// MempoolConfig holds mempool sizing and fee settings.
type MempoolConfig struct {
	// Capacity is the maximum number of spend bundles held at once.
	// Zero is legal and means the pool admits nothing.
	Capacity int `conf:"mempool.capacity"`
	// MinFeeRate is the operator floor fee rate, in base units per cost.
	MinFeeRate float64 `conf:"mempool.minfeerate"`
	// OutcomeHistory is how many terminal submission outcomes to retain
	// for status queries.
	OutcomeHistory int `conf:"mempool.outcomehistory"`
}

// RPCConfig holds RPC server settings.
type RPCConfig struct {
	Enabled     bool     `conf:"rpc.enabled"`
	Addr        string   `conf:"rpc.addr"`
	Port        int      `conf:"rpc.port"`
	AllowedIPs  []string `conf:"rpc.allowed"`
	CORSOrigins []string `conf:"rpc.cors"` // Allowed CORS origins ("*" = all).
}

// StorageConfig holds storage backend settings.
type StorageConfig struct {
	// InMemory keeps the coin set in memory only. Useful for tests and
	// throwaway nodes; nothing survives a restart.
	InMemory bool `conf:"storage.inmemory"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.driftnet
//	macOS:   ~/Library/Application Support/Driftnet
//	Windows: %APPDATA%\Driftnet
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".driftnet"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Driftnet")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Driftnet")
		}
		return filepath.Join(home, "AppData", "Roaming", "Driftnet")
	default:
		return filepath.Join(home, ".driftnet")
	}
}

// ChainDataDir returns the chain-specific data directory.
func (c *Config) ChainDataDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// CoinsDir returns the coin set database directory.
func (c *Config) CoinsDir() string {
	return filepath.Join(c.ChainDataDir(), "coins")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "driftnet.conf")
}
