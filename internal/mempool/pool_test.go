package mempool

import (
	"testing"

	"github.com/driftchain/driftnet-chain/internal/chain"
	"github.com/driftchain/driftnet-chain/pkg/types"
)

// makeItem builds a pool item with a one-byte id seed and synthetic coin ids.
func makeItem(seed byte, feeRate float64, coins ...byte) *Item {
	consumed := make([]types.CoinID, len(coins))
	produced := make([]types.CoinID, len(coins))
	for i, c := range coins {
		consumed[i] = types.CoinID{0xc0, c}
		produced[i] = types.CoinID{0xd0, c, seed} // distinct from consumed ids
	}
	return &Item{
		ID:       types.Hash{seed},
		Fee:      uint64(feeRate * 100),
		Cost:     100,
		FeeRate:  feeRate,
		Consumed: consumed,
		Produced: produced,
	}
}

func newPool(capacity int) *Pool {
	return New(chain.Tip{Hash: types.Hash{0xee}, Height: 10}, capacity)
}

// checkCoherent verifies that the four indices describe the same item set.
func checkCoherent(t *testing.T, p *Pool) {
	t.Helper()

	if p.rates.Len() != len(p.byID) {
		t.Fatalf("rate index has %d entries, byID has %d", p.rates.Len(), len(p.byID))
	}
	p.rates.Ascend(func(k rateKey) bool {
		s, ok := p.byID[k.id]
		if !ok {
			t.Fatalf("rate index references unknown id %s", k.id)
		}
		if s.item.FeeRate != k.feeRate || s.seq != k.seq {
			t.Fatalf("rate key %+v does not match slot for %s", k, k.id)
		}
		return true
	})
	for coin, id := range p.consumed {
		s, ok := p.byID[id]
		if !ok {
			t.Fatalf("consumed index references unknown id %s", id)
		}
		found := false
		for _, c := range s.item.Consumed {
			if c == coin {
				found = true
			}
		}
		if !found {
			t.Fatalf("consumed index maps coin %s to item %s which does not consume it", coin, id)
		}
	}
	for coin, id := range p.produced {
		if _, ok := p.byID[id]; !ok {
			t.Fatalf("produced index references unknown id %s", id)
		}
		_ = coin
	}
	// Reverse direction: every admitted item's coins are fully indexed.
	for id, s := range p.byID {
		for _, c := range s.item.Consumed {
			if p.consumed[c] != id {
				t.Fatalf("coin %s consumed by %s missing from index", c, id)
			}
		}
		for _, c := range s.item.Produced {
			if p.produced[c] != id {
				t.Fatalf("coin %s produced by %s missing from index", c, id)
			}
		}
	}
	if len(p.byID) > p.capacity {
		t.Fatalf("pool holds %d items, capacity %d", len(p.byID), p.capacity)
	}
}

func TestPool_AdmitAndLookup(t *testing.T) {
	p := newPool(10)
	x := makeItem(0x01, 5, 0xaa)
	p.Admit(x)

	if p.Count() != 1 {
		t.Fatalf("count = %d, want 1", p.Count())
	}
	if !p.Has(x.ID) {
		t.Error("Has should be true after Admit")
	}
	got, ok := p.Get(x.ID)
	if !ok || got != x {
		t.Error("Get should return the admitted item")
	}

	consumer, ok := p.ConsumerOf(types.CoinID{0xc0, 0xaa})
	if !ok || consumer != x {
		t.Error("ConsumerOf should resolve the consuming item")
	}
	if _, ok := p.ConsumerOf(types.CoinID{0xde}); ok {
		t.Error("ConsumerOf should miss for an untouched coin")
	}
	checkCoherent(t, p)
}

func TestPool_ProducerOf(t *testing.T) {
	p := newPool(10)
	x := makeItem(0x01, 5, 0xaa)
	p.Admit(x)

	producer, ok := p.ProducerOf(x.Produced[0])
	if !ok || producer != x {
		t.Error("ProducerOf should resolve the producing item")
	}
	p.Remove(x)
	if _, ok := p.ProducerOf(x.Produced[0]); ok {
		t.Error("ProducerOf should miss after Remove")
	}
}

// Scenario: capacity 2, X@5 and Y@3 admitted, then Z@10 evicts Y.
func TestPool_EvictionSelectsMinimum(t *testing.T) {
	p := newPool(2)
	x := makeItem(0x01, 5, 0xa1)
	y := makeItem(0x02, 3, 0xb1)
	z := makeItem(0x03, 10, 0xc1)

	p.Admit(x)
	p.Admit(y)
	if !p.Full() {
		t.Fatal("pool should be full with 2 items")
	}
	if got := p.MinFeeRate(); got != 3 {
		t.Fatalf("MinFeeRate = %v, want 3", got)
	}

	p.Admit(z)
	if p.Has(y.ID) {
		t.Error("Y (lowest fee rate) should have been evicted")
	}
	if !p.Has(x.ID) || !p.Has(z.ID) {
		t.Error("X and Z should remain")
	}
	if p.Count() != 2 {
		t.Errorf("count = %d, want 2", p.Count())
	}
	if _, ok := p.ConsumerOf(types.CoinID{0xc0, 0xb1}); ok {
		t.Error("evicted item's consumed coin should be gone from the index")
	}
	if got := p.MinFeeRate(); got != 5 {
		t.Errorf("MinFeeRate = %v, want 5", got)
	}
	checkCoherent(t, p)
}

// Scenario: capacity 1, tie at fee rate 1 — the older item is the victim.
func TestPool_EvictionTieBreakOldestFirst(t *testing.T) {
	p := newPool(1)
	x := makeItem(0x01, 1, 0xa1)
	y := makeItem(0x02, 1, 0xb1)

	p.Admit(x)
	if !p.Full() {
		t.Fatal("pool should be full with 1 item")
	}
	p.Admit(y)

	if p.Has(x.ID) {
		t.Error("X (older at tied rate) should have been evicted")
	}
	if !p.Has(y.ID) {
		t.Error("Y should be admitted")
	}
	if p.Count() != 1 {
		t.Errorf("count = %d, want 1", p.Count())
	}
	checkCoherent(t, p)
}

// One admit into a full pool evicts exactly one item even with many rate ties.
func TestPool_EvictionCardinality(t *testing.T) {
	p := newPool(4)
	for i := byte(1); i <= 4; i++ {
		p.Admit(makeItem(i, 2, i))
	}

	p.Admit(makeItem(0x10, 7, 0x10))
	if p.Count() != 4 {
		t.Fatalf("count = %d, want 4 after one eviction", p.Count())
	}
	// The oldest of the tied items is the one that went.
	if p.Has(types.Hash{0x01}) {
		t.Error("oldest tied item should have been evicted")
	}
	for i := byte(2); i <= 4; i++ {
		if !p.Has(types.Hash{i}) {
			t.Errorf("item %d should still be admitted", i)
		}
	}
	checkCoherent(t, p)
}

// Scenario: removing the only item at a rate leaves no trace of that rate.
func TestPool_RemoveDropsRateEntry(t *testing.T) {
	p := newPool(5)
	x := makeItem(0x01, 7, 0xa1)
	p.Admit(x)
	p.Remove(x)

	if p.Count() != 0 {
		t.Fatalf("count = %d, want 0", p.Count())
	}
	if p.rates.Len() != 0 {
		t.Error("rate index should be empty after removing the only item")
	}
	if _, ok := p.ConsumerOf(types.CoinID{0xc0, 0xa1}); ok {
		t.Error("consumed index should be empty after Remove")
	}
	checkCoherent(t, p)
}

// Not-full pools report 0 regardless of admitted fee rates.
func TestPool_MinFeeRateNotFull(t *testing.T) {
	p := newPool(5)
	p.Admit(makeItem(0x01, 50, 0xa1))
	p.Admit(makeItem(0x02, 90, 0xb1))

	if got := p.MinFeeRate(); got != 0 {
		t.Errorf("MinFeeRate = %v, want 0 while below capacity", got)
	}
}

func TestPool_CapacityZero(t *testing.T) {
	p := newPool(0)
	if !p.Full() {
		t.Error("capacity-0 pool is always full")
	}
	if got := p.MinFeeRate(); got != 0 {
		t.Errorf("MinFeeRate = %v, want 0 for an empty capacity-0 pool", got)
	}

	p.Admit(makeItem(0x01, 10, 0xa1))
	if p.Count() != 0 {
		t.Errorf("count = %d, want 0: nothing can stay in a capacity-0 pool", p.Count())
	}
	if _, ok := p.ConsumerOf(types.CoinID{0xc0, 0xa1}); ok {
		t.Error("no coin index entries may survive a capacity-0 admit")
	}
	checkCoherent(t, p)
}

func TestPool_AdmitDuplicatePanics(t *testing.T) {
	p := newPool(5)
	x := makeItem(0x01, 5, 0xa1)
	p.Admit(x)

	defer func() {
		if recover() == nil {
			t.Error("admitting a duplicate id should panic")
		}
	}()
	p.Admit(makeItem(0x01, 9, 0xb1))
}

func TestPool_RemoveAbsentPanics(t *testing.T) {
	p := newPool(5)

	defer func() {
		if recover() == nil {
			t.Error("removing an absent item should panic")
		}
	}()
	p.Remove(makeItem(0x01, 5, 0xa1))
}

func TestPool_SelectByFeeRate(t *testing.T) {
	p := newPool(10)
	p.Admit(makeItem(0x01, 3, 0xa1))
	p.Admit(makeItem(0x02, 9, 0xb1))
	p.Admit(makeItem(0x03, 6, 0xc1))

	items := p.SelectByFeeRate(0)
	if len(items) != 3 {
		t.Fatalf("selected %d items, want 3", len(items))
	}
	if items[0].FeeRate != 9 || items[1].FeeRate != 6 || items[2].FeeRate != 3 {
		t.Errorf("items not in descending fee-rate order: %v %v %v",
			items[0].FeeRate, items[1].FeeRate, items[2].FeeRate)
	}

	top := p.SelectByFeeRate(2)
	if len(top) != 2 {
		t.Fatalf("selected %d items, want 2", len(top))
	}
	if top[0].ID != (types.Hash{0x02}) || top[1].ID != (types.Hash{0x03}) {
		t.Error("limit should keep the highest fee rates")
	}
}

// Indices stay coherent and within capacity across a mixed mutation sequence.
func TestPool_InvariantsUnderChurn(t *testing.T) {
	p := newPool(3)
	items := make([]*Item, 0, 8)
	for i := byte(1); i <= 8; i++ {
		items = append(items, makeItem(i, float64(i%4)+1, i))
	}

	for _, it := range items {
		p.Admit(it)
		checkCoherent(t, p)
	}

	// Remove whatever is still admitted, one by one.
	for _, it := range items {
		if p.Has(it.ID) {
			p.Remove(it)
			checkCoherent(t, p)
		}
	}
	if p.Count() != 0 {
		t.Errorf("count = %d, want 0 after removing everything", p.Count())
	}
	if p.rates.Len() != 0 || len(p.consumed) != 0 || len(p.produced) != 0 {
		t.Error("all indices should be empty after removing everything")
	}
}

func TestNew_NegativeCapacity(t *testing.T) {
	p := newPool(-1)
	if p.Capacity() != 0 {
		t.Errorf("capacity = %d, want 0", p.Capacity())
	}
}

func TestPool_Tip(t *testing.T) {
	tip := chain.Tip{Hash: types.Hash{0x42}, Height: 99}
	p := New(tip, 5)
	if p.Tip() != tip {
		t.Error("Tip should return the construction-time tip unchanged")
	}
}
