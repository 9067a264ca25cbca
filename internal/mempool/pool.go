// Package mempool implements the fee-prioritized holding area for spend
// bundles awaiting block inclusion.
package mempool

import (
	"bytes"
	"fmt"

	"github.com/driftchain/driftnet-chain/internal/chain"
	"github.com/driftchain/driftnet-chain/pkg/spend"
	"github.com/driftchain/driftnet-chain/pkg/types"
	"github.com/google/btree"
)

// Item is one pending spend bundle's admission record. The admission layer
// builds it; the pool never mutates its contents.
type Item struct {
	ID       types.Hash
	Fee      uint64
	Cost     uint64
	FeeRate  float64 // Fee per unit of execution cost; the sole priority key.
	Consumed []types.CoinID
	Produced []types.CoinID
	Bundle   *spend.Bundle
}

// rateKey orders items by fee rate, then insertion order, then id.
// Equal fee rates resolve to the oldest-inserted item, which makes the
// eviction victim deterministic.
type rateKey struct {
	feeRate float64
	seq     uint64
	id      types.Hash
}

func rateKeyLess(a, b rateKey) bool {
	if a.feeRate != b.feeRate {
		return a.feeRate < b.feeRate
	}
	if a.seq != b.seq {
		return a.seq < b.seq
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}

const rateTreeDegree = 32

// slot pairs an admitted item with its insertion sequence number. The
// sequence number reconstructs the item's rateKey on removal.
type slot struct {
	item *Item
	seq  uint64
}

// Pool holds pending items indexed by id, by fee rate, and by the coins
// they consume and produce. The indices move together: an item is present
// in all of them or in none, and only byID owns the item — the coin and
// rate indices hold ids.
//
// Pool does no locking of its own. Callers must serialize every mutation
// against other mutations and against reads that need a consistent
// snapshot; the admission manager is that caller.
type Pool struct {
	tip      chain.Tip
	capacity int
	seq      uint64

	byID     map[types.Hash]*slot
	rates    *btree.BTreeG[rateKey]
	consumed map[types.CoinID]types.Hash
	produced map[types.CoinID]types.Hash
}

// New creates an empty pool bound to the given chain tip, holding at most
// capacity items. Capacity 0 is legal: anything admitted is immediately
// evicted again.
func New(tip chain.Tip, capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{
		tip:      tip,
		capacity: capacity,
		byID:     make(map[types.Hash]*slot),
		rates:    btree.NewG(rateTreeDegree, rateKeyLess),
		consumed: make(map[types.CoinID]types.Hash),
		produced: make(map[types.CoinID]types.Hash),
	}
}

// Tip returns the chain tip this pool was built against. The pool never
// interprets it.
func (p *Pool) Tip() chain.Tip {
	return p.tip
}

// Capacity returns the maximum number of items the pool holds.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Count returns the number of admitted items.
func (p *Pool) Count() int {
	return len(p.byID)
}

// Full reports whether the pool is at capacity.
func (p *Pool) Full() bool {
	return len(p.byID) >= p.capacity
}

// MinFeeRate returns the admission threshold: 0 while the pool has free
// slots (any fee rate is acceptable), otherwise the smallest fee rate
// among admitted items. The threshold is advisory — Admit evicts on the
// caller's behalf regardless.
func (p *Pool) MinFeeRate() float64 {
	if !p.Full() {
		return 0
	}
	min, ok := p.rates.Min()
	if !ok {
		return 0
	}
	return min.feeRate
}

// Admit inserts item, evicting the minimum-fee-rate item first when the
// pool is full. Exactly one item is evicted per call, never more. Among
// items tied at the minimum fee rate the oldest-inserted one is the victim.
//
// Admitting an id already present is a contract violation and panics.
// Conflict resolution is the caller's job: Admit does not consult the
// coin indices before inserting.
func (p *Pool) Admit(item *Item) {
	if _, exists := p.byID[item.ID]; exists {
		panic(fmt.Sprintf("mempool: admit of duplicate id %s", item.ID))
	}

	if p.Full() {
		if min, ok := p.rates.Min(); ok {
			p.Remove(p.byID[min.id].item)
		}
	}

	s := &slot{item: item, seq: p.seq}
	p.seq++
	p.byID[item.ID] = s
	p.rates.ReplaceOrInsert(rateKey{feeRate: item.FeeRate, seq: s.seq, id: item.ID})
	for _, c := range item.Consumed {
		p.consumed[c] = item.ID
	}
	for _, c := range item.Produced {
		p.produced[c] = item.ID
	}

	// Capacity 0: there was no victim to evict, so the insert itself
	// cannot stay.
	if len(p.byID) > p.capacity {
		p.Remove(item)
	}
}

// Remove deletes an admitted item from every index. Removing an item that
// is not currently admitted is a contract violation and panics.
func (p *Pool) Remove(item *Item) {
	s, exists := p.byID[item.ID]
	if !exists {
		panic(fmt.Sprintf("mempool: remove of absent id %s", item.ID))
	}
	p.rates.Delete(rateKey{feeRate: item.FeeRate, seq: s.seq, id: item.ID})
	for _, c := range item.Consumed {
		delete(p.consumed, c)
	}
	for _, c := range item.Produced {
		delete(p.produced, c)
	}
	delete(p.byID, item.ID)
}

// Min returns the current minimum-fee-rate item, the next eviction
// victim. ok is false when the pool is empty.
func (p *Pool) Min() (*Item, bool) {
	k, ok := p.rates.Min()
	if !ok {
		return nil, false
	}
	return p.byID[k.id].item, true
}

// Get retrieves an admitted item by id.
func (p *Pool) Get(id types.Hash) (*Item, bool) {
	s, ok := p.byID[id]
	if !ok {
		return nil, false
	}
	return s.item, true
}

// Has reports whether an item with the given id is admitted.
func (p *Pool) Has(id types.Hash) bool {
	_, ok := p.byID[id]
	return ok
}

// ConsumerOf returns the admitted item spending the given coin, if any.
// A hit means a candidate consuming the same coin conflicts with it.
func (p *Pool) ConsumerOf(coin types.CoinID) (*Item, bool) {
	id, ok := p.consumed[coin]
	if !ok {
		return nil, false
	}
	return p.byID[id].item, true
}

// ProducerOf returns the admitted item creating the given coin, if any.
func (p *Pool) ProducerOf(coin types.CoinID) (*Item, bool) {
	id, ok := p.produced[coin]
	if !ok {
		return nil, false
	}
	return p.byID[id].item, true
}

// SelectByFeeRate returns admitted items ordered by fee rate descending,
// up to limit (limit <= 0 returns all). This is the block-template
// assembly order.
func (p *Pool) SelectByFeeRate(limit int) []*Item {
	if limit <= 0 || limit > len(p.byID) {
		limit = len(p.byID)
	}
	items := make([]*Item, 0, limit)
	p.rates.Descend(func(k rateKey) bool {
		items = append(items, p.byID[k.id].item)
		return len(items) < limit
	})
	return items
}
