package coinset

import (
	"testing"

	"github.com/driftchain/driftnet-chain/internal/storage"
	"github.com/driftchain/driftnet-chain/pkg/spend"
	"github.com/driftchain/driftnet-chain/pkg/types"
)

func newTestStore() *Store {
	return NewStore(storage.NewMemory())
}

func testCoin(seed byte, amount uint64) spend.Coin {
	return spend.Coin{
		ParentID: types.CoinID{seed},
		Owner:    types.Hash{0x0f},
		Amount:   amount,
	}
}

func TestStore_PutGet(t *testing.T) {
	s := newTestStore()
	c := testCoin(0x01, 1000)

	if err := s.Put(c); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(c.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Amount != 1000 || got.ParentID != c.ParentID {
		t.Errorf("Get returned wrong coin: %+v", got)
	}
}

func TestStore_HasDelete(t *testing.T) {
	s := newTestStore()
	c := testCoin(0x01, 500)
	s.Put(c)

	ok, err := s.Has(c.ID())
	if err != nil || !ok {
		t.Fatalf("Has = %v, %v; want true", ok, err)
	}

	if err := s.Delete(c.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, _ = s.Has(c.ID())
	if ok {
		t.Error("Has = true after Delete")
	}
	if _, err := s.Get(c.ID()); err == nil {
		t.Error("Get after Delete should fail")
	}
}

func TestStore_Apply(t *testing.T) {
	s := newTestStore()
	in := testCoin(0x01, 1000)
	s.Put(in)

	out := spend.Coin{ParentID: in.ID(), Owner: types.Hash{0x0f}, Amount: 900}
	b := &spend.Bundle{Spends: []spend.Spend{{Coin: in, Outputs: []spend.Coin{out}}}}

	if err := s.Apply(b); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if ok, _ := s.Has(in.ID()); ok {
		t.Error("consumed coin should be gone after Apply")
	}
	if ok, _ := s.Has(out.ID()); !ok {
		t.Error("produced coin should exist after Apply")
	}
}
