package spend

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/driftchain/driftnet-chain/pkg/crypto"
	"github.com/driftchain/driftnet-chain/pkg/types"
)

// ErrNegativeFee is returned when a bundle's created value exceeds its consumed value.
var ErrNegativeFee = errors.New("bundle outputs exceed inputs")

// Spend consumes one coin and declares the coins it creates.
// Solution is the opaque proof input for the coin's spending condition.
type Spend struct {
	Coin     Coin   `json:"coin"`
	Solution []byte `json:"solution,omitempty"`
	Outputs  []Coin `json:"outputs,omitempty"`
}

// Bundle groups coin spends under one aggregated signature.
// The signature is carried opaque through admission; verification happens
// in the consensus validator, never here.
type Bundle struct {
	Spends []Spend `json:"spends"`
	AggSig []byte  `json:"agg_sig,omitempty"`
}

// Encode serializes the bundle to its canonical JSON form.
func (b *Bundle) Encode() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("bundle encode: %w", err)
	}
	return data, nil
}

// DecodeBundle deserializes a bundle from its canonical JSON form.
func DecodeBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bundle decode: %w", err)
	}
	return &b, nil
}

// Hash returns the bundle's identifier: BLAKE3 of the canonical encoding.
func (b *Bundle) Hash() types.Hash {
	data, err := b.Encode()
	if err != nil {
		// A bundle of plain values cannot fail JSON encoding.
		panic(fmt.Sprintf("bundle hash: %v", err))
	}
	return crypto.Hash(data)
}

// Consumed returns the ids of all coins this bundle spends.
func (b *Bundle) Consumed() []types.CoinID {
	ids := make([]types.CoinID, 0, len(b.Spends))
	for _, s := range b.Spends {
		ids = append(ids, s.Coin.ID())
	}
	return ids
}

// Produced returns the ids of all coins this bundle creates.
func (b *Bundle) Produced() []types.CoinID {
	var ids []types.CoinID
	for _, s := range b.Spends {
		for _, out := range s.Outputs {
			ids = append(ids, out.ID())
		}
	}
	return ids
}

// Fee returns consumed value minus created value.
func (b *Bundle) Fee() (uint64, error) {
	var in, out uint64
	for _, s := range b.Spends {
		in += s.Coin.Amount
		for _, o := range s.Outputs {
			out += o.Amount
		}
	}
	if out > in {
		return 0, ErrNegativeFee
	}
	return in - out, nil
}

// Cost returns the bundle's execution cost. The canonical encoding size
// stands in for full condition-execution accounting.
func (b *Bundle) Cost() uint64 {
	data, err := b.Encode()
	if err != nil {
		return 0
	}
	return uint64(len(data))
}
