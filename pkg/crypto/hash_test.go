package crypto

import (
	"testing"

	"github.com/driftchain/driftnet-chain/pkg/types"
)

func TestHash_Deterministic(t *testing.T) {
	a := Hash([]byte("hello"))
	b := Hash([]byte("hello"))
	if a != b {
		t.Error("same input should produce same hash")
	}

	c := Hash([]byte("world"))
	if a == c {
		t.Error("different inputs should produce different hashes")
	}
}

func TestHash_Empty(t *testing.T) {
	h := Hash(nil)
	if h.IsZero() {
		t.Error("hash of empty input should not be the zero hash")
	}
}

func TestHashConcat(t *testing.T) {
	a := types.Hash{0x01}
	b := types.Hash{0x02}

	ab := HashConcat(a, b)
	ba := HashConcat(b, a)
	if ab == ba {
		t.Error("HashConcat should be order-sensitive")
	}

	again := HashConcat(a, b)
	if ab != again {
		t.Error("HashConcat should be deterministic")
	}
}
