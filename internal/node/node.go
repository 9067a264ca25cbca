// Package node provides a reusable Driftnet node that can be embedded
// in any binary.
package node

import (
	"fmt"
	"os"

	"github.com/driftchain/driftnet-chain/config"
	"github.com/driftchain/driftnet-chain/internal/admission"
	"github.com/driftchain/driftnet-chain/internal/chain"
	"github.com/driftchain/driftnet-chain/internal/coinset"
	dlog "github.com/driftchain/driftnet-chain/internal/log"
	"github.com/driftchain/driftnet-chain/internal/rpc"
	"github.com/driftchain/driftnet-chain/internal/storage"
	"github.com/rs/zerolog"
)

// Node is a fully-initialized Driftnet node.
type Node struct {
	cfg    *config.Config
	logger zerolog.Logger

	// Core
	db      storage.DB
	coins   *coinset.Store
	manager *admission.Manager

	// RPC
	rpcServer *rpc.Server
}

// New creates and initializes a new Node. It performs all setup steps
// (logger, storage, coin set, mempool, RPC) but does NOT start the RPC
// listener. Call Start() for that.
func New(cfg *config.Config) (*Node, error) {
	// ── 1. Init logger ──────────────────────────────────────────────
	logFile := cfg.Log.File
	if logFile == "" && !cfg.Storage.InMemory {
		logsDir := cfg.LogsDir()
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return nil, fmt.Errorf("creating logs dir: %w", err)
		}
		logFile = logsDir + "/driftnet.log"
	}
	if err := dlog.Init(cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger := dlog.WithComponent("node")

	logger.Info().
		Str("network", string(cfg.Network)).
		Int("mempool_capacity", cfg.Mempool.Capacity).
		Msg("Starting Driftnet Node")

	// ── 2. Open storage ─────────────────────────────────────────────
	var db storage.DB
	if cfg.Storage.InMemory {
		db = storage.NewMemory()
		logger.Info().Msg("Using in-memory storage")
	} else {
		var err error
		db, err = storage.NewBadger(cfg.CoinsDir())
		if err != nil {
			return nil, fmt.Errorf("open database at %s: %w", cfg.CoinsDir(), err)
		}
		logger.Info().Str("path", cfg.CoinsDir()).Msg("Database opened")
	}

	// Coin records get their own namespace so later components can share
	// the database.
	coins := coinset.NewStore(storage.NewPrefixDB(db, []byte("coinset/")))

	// ── 3. Mempool ──────────────────────────────────────────────────
	// A fresh node starts at the zero tip until a tip source moves it.
	manager, err := admission.New(chain.Tip{}, cfg.Mempool.Capacity, coins)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create mempool: %w", err)
	}
	if cfg.Mempool.MinFeeRate > 0 {
		manager.SetMinFeeRate(cfg.Mempool.MinFeeRate)
	}
	manager.SetOutcomeHistory(cfg.Mempool.OutcomeHistory)

	// ── 4. RPC server ───────────────────────────────────────────────
	var rpcServer *rpc.Server
	if cfg.RPC.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.RPC.Addr, cfg.RPC.Port)
		rpcServer = rpc.New(addr, manager, coins, cfg.RPC)
	}

	return &Node{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		coins:     coins,
		manager:   manager,
		rpcServer: rpcServer,
	}, nil
}

// Start begins serving RPC requests.
func (n *Node) Start() error {
	if n.rpcServer != nil {
		if err := n.rpcServer.Start(); err != nil {
			return fmt.Errorf("start rpc: %w", err)
		}
		n.logger.Info().Str("addr", n.rpcServer.Addr()).Msg("RPC server listening")
	}

	n.logger.Info().
		Int("mempool_count", n.manager.Count()).
		Bool("rpc", n.rpcServer != nil).
		Msg("Node started successfully")

	return nil
}

// Stop performs graceful shutdown in reverse order.
func (n *Node) Stop() {
	if n.rpcServer != nil {
		n.rpcServer.Stop()
	}
	if n.db != nil {
		n.db.Close()
	}

	n.logger.Info().Msg("Goodbye!")
}

// RPCAddr returns the address the RPC server is listening on.
func (n *Node) RPCAddr() string {
	if n.rpcServer == nil {
		return ""
	}
	return n.rpcServer.Addr()
}

// Mempool returns the admission manager for embedders.
func (n *Node) Mempool() *admission.Manager {
	return n.manager
}

// Coins returns the confirmed coin store.
func (n *Node) Coins() *coinset.Store {
	return n.coins
}
