// Package coinset manages the confirmed unspent coin set.
package coinset

import (
	"encoding/json"
	"fmt"

	"github.com/driftchain/driftnet-chain/internal/storage"
	"github.com/driftchain/driftnet-chain/pkg/spend"
	"github.com/driftchain/driftnet-chain/pkg/types"
)

// prefixCoin namespaces coin records: c/<coin_id> -> Coin JSON.
var prefixCoin = []byte("c/")

// Store holds the confirmed unspent coins, backed by a storage.DB.
type Store struct {
	db storage.DB
}

// NewStore creates a coin store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// coinKey builds a storage key for a coin id: "c/" + id(32).
func coinKey(id types.CoinID) []byte {
	key := make([]byte, len(prefixCoin)+types.HashSize)
	copy(key, prefixCoin)
	copy(key[len(prefixCoin):], id[:])
	return key
}

// Get retrieves a coin by its id.
func (s *Store) Get(id types.CoinID) (*spend.Coin, error) {
	data, err := s.db.Get(coinKey(id))
	if err != nil {
		return nil, fmt.Errorf("coin get: %w", err)
	}
	var c spend.Coin
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("coin unmarshal: %w", err)
	}
	return &c, nil
}

// Put stores a coin under its derived id.
func (s *Store) Put(c spend.Coin) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("coin marshal: %w", err)
	}
	if err := s.db.Put(coinKey(c.ID()), data); err != nil {
		return fmt.Errorf("coin put: %w", err)
	}
	return nil
}

// Delete removes a coin.
func (s *Store) Delete(id types.CoinID) error {
	if err := s.db.Delete(coinKey(id)); err != nil {
		return fmt.Errorf("coin delete: %w", err)
	}
	return nil
}

// Has checks whether a coin exists in the confirmed set.
func (s *Store) Has(id types.CoinID) (bool, error) {
	ok, err := s.db.Has(coinKey(id))
	if err != nil {
		return false, fmt.Errorf("coin has: %w", err)
	}
	return ok, nil
}

// Apply updates the set for a confirmed bundle: consumed coins are
// removed and produced coins inserted.
func (s *Store) Apply(b *spend.Bundle) error {
	for _, sp := range b.Spends {
		if err := s.Delete(sp.Coin.ID()); err != nil {
			return err
		}
		for _, out := range sp.Outputs {
			if err := s.Put(out); err != nil {
				return err
			}
		}
	}
	return nil
}
