// Package spend defines coins and the spend bundles that consume and create them.
package spend

import (
	"encoding/binary"

	"github.com/driftchain/driftnet-chain/pkg/crypto"
	"github.com/driftchain/driftnet-chain/pkg/types"
)

// Coin is a single spendable value record in the coin-set model.
// Owner commits to the condition under which the coin may be spent.
type Coin struct {
	ParentID types.CoinID `json:"parent_id"`
	Owner    types.Hash   `json:"owner"`
	Amount   uint64       `json:"amount"`
}

// ID derives the coin's identifier: BLAKE3(parent_id || owner || amount).
func (c Coin) ID() types.CoinID {
	buf := make([]byte, 0, types.HashSize*2+8)
	buf = append(buf, c.ParentID[:]...)
	buf = append(buf, c.Owner[:]...)
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], c.Amount)
	buf = append(buf, amt[:]...)
	return types.CoinID(crypto.Hash(buf))
}
