package rpc

import (
	"github.com/driftchain/driftnet-chain/internal/mempool"
	"github.com/driftchain/driftnet-chain/pkg/spend"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeNotFound       = -32000
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      interface{} `json:"id"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	ID      interface{} `json:"id"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── Param types ─────────────────────────────────────────────────────────

// PushTxParam is used by mempool_pushTx.
type PushTxParam struct {
	Bundle *spend.Bundle `json:"bundle"`
}

// TxIDParam is used by endpoints that take a single bundle id.
type TxIDParam struct {
	TxID string `json:"tx_id"`
}

// CoinIDParam is used by coin_get.
type CoinIDParam struct {
	CoinID string `json:"coin_id"`
}

// ContentsParam is used by mempool_getContents. A zero or missing limit
// returns everything.
type ContentsParam struct {
	Limit int `json:"limit,omitempty"`
}

// ── Result types ────────────────────────────────────────────────────────

// PushTxResult is returned by mempool_pushTx.
type PushTxResult struct {
	TxID   string `json:"tx_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// TxStatusResult is returned by mempool_txStatus.
type TxStatusResult struct {
	TxID   string `json:"tx_id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ItemResult wraps a mempool entry for RPC responses.
type ItemResult struct {
	TxID     string        `json:"tx_id"`
	Fee      uint64        `json:"fee"`
	Cost     uint64        `json:"cost"`
	FeeRate  float64       `json:"fee_rate"`
	Consumed []string      `json:"consumed"`
	Produced []string      `json:"produced"`
	Bundle   *spend.Bundle `json:"bundle,omitempty"`
}

// NewItemResult creates an ItemResult from a mempool item.
func NewItemResult(item *mempool.Item, includeBundle bool) *ItemResult {
	consumed := make([]string, len(item.Consumed))
	for i, id := range item.Consumed {
		consumed[i] = id.String()
	}
	produced := make([]string, len(item.Produced))
	for i, id := range item.Produced {
		produced[i] = id.String()
	}
	r := &ItemResult{
		TxID:     item.ID.String(),
		Fee:      item.Fee,
		Cost:     item.Cost,
		FeeRate:  item.FeeRate,
		Consumed: consumed,
		Produced: produced,
	}
	if includeBundle {
		r.Bundle = item.Bundle
	}
	return r
}

// MempoolInfoResult is returned by mempool_getInfo.
type MempoolInfoResult struct {
	Count      int     `json:"count"`
	Capacity   int     `json:"capacity"`
	Full       bool    `json:"full"`
	MinFeeRate float64 `json:"min_fee_rate"`
	TipHash    string  `json:"tip_hash"`
	TipHeight  uint64  `json:"tip_height"`
}

// MempoolContentsResult is returned by mempool_getContents. Entries are
// ordered by fee rate, best first.
type MempoolContentsResult struct {
	Count int           `json:"count"`
	Items []*ItemResult `json:"items"`
}

// CoinResult is returned by coin_get.
type CoinResult struct {
	CoinID   string `json:"coin_id"`
	ParentID string `json:"parent_id"`
	Owner    string `json:"owner"`
	Amount   uint64 `json:"amount"`
}

// ChainTipResult is returned by chain_getTip.
type ChainTipResult struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}
