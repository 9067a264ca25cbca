package config

// DefaultMempoolCapacity bounds the pool on nodes that don't configure one.
const DefaultMempoolCapacity = 50_000

// DefaultMainnet returns the default node configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Mempool: MempoolConfig{
			Capacity:       DefaultMempoolCapacity,
			MinFeeRate:     0,
			OutcomeHistory: 10_000,
		},
		RPC: RPCConfig{
			Enabled:    true,
			Addr:       "127.0.0.1",
			Port:       9737,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Storage: StorageConfig{
			InMemory: false,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default node configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.RPC.Port = 9837
	return cfg
}

// Default returns the default node configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
