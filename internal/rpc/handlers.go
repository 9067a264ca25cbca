package rpc

import (
	"fmt"

	"github.com/driftchain/driftnet-chain/pkg/types"
)

// ── Mempool endpoints ───────────────────────────────────────────────────

func (s *Server) handleMempoolPushTx(req *Request) (interface{}, *Error) {
	var params PushTxParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	if params.Bundle == nil || len(params.Bundle.Spends) == 0 {
		return nil, &Error{Code: CodeInvalidParams, Message: "bundle with at least one spend is required"}
	}

	res := s.manager.Submit(params.Bundle)
	return &PushTxResult{
		TxID:   params.Bundle.Hash().String(),
		Status: string(res.Status),
		Reason: res.Reason,
	}, nil
}

func (s *Server) handleMempoolTxStatus(req *Request) (interface{}, *Error) {
	id, rpcErr := parseTxID(req)
	if rpcErr != nil {
		return nil, rpcErr
	}

	res, ok := s.manager.Status(id)
	if !ok {
		return nil, &Error{Code: CodeNotFound, Message: "transaction not known to this node"}
	}
	return &TxStatusResult{
		TxID:   id.String(),
		Status: string(res.Status),
		Reason: res.Reason,
	}, nil
}

func (s *Server) handleMempoolGetItem(req *Request) (interface{}, *Error) {
	id, rpcErr := parseTxID(req)
	if rpcErr != nil {
		return nil, rpcErr
	}

	item, ok := s.manager.Get(id)
	if !ok {
		return nil, &Error{Code: CodeNotFound, Message: "transaction not in mempool"}
	}
	return NewItemResult(item, true), nil
}

func (s *Server) handleMempoolGetInfo(_ *Request) (interface{}, *Error) {
	tip := s.manager.Tip()
	return &MempoolInfoResult{
		Count:      s.manager.Count(),
		Capacity:   s.manager.Capacity(),
		Full:       s.manager.Full(),
		MinFeeRate: s.manager.MinFeeRate(),
		TipHash:    tip.Hash.String(),
		TipHeight:  tip.Height,
	}, nil
}

func (s *Server) handleMempoolGetContents(req *Request) (interface{}, *Error) {
	var params ContentsParam
	if req.Params != nil {
		if err := parseParams(req, &params); err != nil {
			return nil, err
		}
	}

	items := s.manager.Template(params.Limit)
	results := make([]*ItemResult, len(items))
	for i, item := range items {
		results[i] = NewItemResult(item, false)
	}
	return &MempoolContentsResult{
		Count: len(results),
		Items: results,
	}, nil
}

// ── Coin set endpoints ──────────────────────────────────────────────────

func (s *Server) handleCoinGet(req *Request) (interface{}, *Error) {
	if s.coins == nil {
		return nil, &Error{Code: CodeNotFound, Message: "coin queries not enabled"}
	}

	var params CoinIDParam
	if err := parseParams(req, &params); err != nil {
		return nil, err
	}
	h, err := types.HexToHash(params.CoinID)
	if err != nil {
		return nil, &Error{Code: CodeInvalidParams, Message: "invalid coin_id: must be 32-byte hex"}
	}
	id := types.CoinID(h)

	coin, err := s.coins.Get(id)
	if err != nil {
		return nil, &Error{Code: CodeNotFound, Message: fmt.Sprintf("coin not found: %v", err)}
	}
	return &CoinResult{
		CoinID:   id.String(),
		ParentID: coin.ParentID.String(),
		Owner:    coin.Owner.String(),
		Amount:   coin.Amount,
	}, nil
}

// ── Chain endpoints ─────────────────────────────────────────────────────

func (s *Server) handleChainGetTip(_ *Request) (interface{}, *Error) {
	tip := s.manager.Tip()
	return &ChainTipResult{
		Hash:   tip.Hash.String(),
		Height: tip.Height,
	}, nil
}

// parseTxID pulls and decodes the tx_id param shared by several endpoints.
func parseTxID(req *Request) (types.Hash, *Error) {
	var params TxIDParam
	if err := parseParams(req, &params); err != nil {
		return types.Hash{}, err
	}
	if params.TxID == "" {
		return types.Hash{}, &Error{Code: CodeInvalidParams, Message: "tx_id is required"}
	}
	id, err := types.HexToHash(params.TxID)
	if err != nil {
		return types.Hash{}, &Error{Code: CodeInvalidParams, Message: "invalid tx_id: must be 32-byte hex"}
	}
	return id, nil
}
