package config

import (
	"fmt"
)

// Validate checks runtime node config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.RPC.Port < 0 || cfg.RPC.Port > 65535 {
		return fmt.Errorf("rpc.port must be in range [0, 65535]")
	}
	if cfg.Mempool.Capacity < 0 {
		return fmt.Errorf("mempool.capacity must be >= 0")
	}
	if cfg.Mempool.MinFeeRate < 0 {
		return fmt.Errorf("mempool.minfeerate must be >= 0")
	}
	if cfg.Mempool.OutcomeHistory <= 0 {
		cfg.Mempool.OutcomeHistory = Default(cfg.Network).Mempool.OutcomeHistory
	}
	return nil
}
