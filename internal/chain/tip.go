// Package chain tracks the confirmed chain state the admission layer runs against.
package chain

import (
	"fmt"

	"github.com/driftchain/driftnet-chain/pkg/types"
)

// Tip identifies the chain head a mempool instance was built against.
// The pool carries it as opaque context; callers use it to know which
// pool instance is authoritative after the head moves.
type Tip struct {
	Hash   types.Hash `json:"hash"`
	Height uint64     `json:"height"`
}

// String returns "height@hash" for logging.
func (t Tip) String() string {
	return fmt.Sprintf("%d@%s", t.Height, t.Hash)
}
