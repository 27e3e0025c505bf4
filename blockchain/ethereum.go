package blockchain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// ToEthereum returns the go-ethereum form of the header.
func (h *Header) ToEthereum() *types.Header {
	return &types.Header{
		ParentHash:  h.ParentHash,
		UncleHash:   h.OmmersHash,
		Coinbase:    h.Beneficiary,
		Root:        h.StateRoot,
		TxHash:      h.TransactionsRoot,
		ReceiptHash: h.ReceiptsRoot,
		Bloom:       h.LogsBloom,
		Difficulty:  h.Difficulty.ToBig(),
		Number:      new(big.Int).SetUint64(h.Number),
		GasLimit:    h.GasLimit,
		GasUsed:     h.GasUsed,
		Time:        h.Timestamp,
		Extra:       common.CopyBytes(h.ExtraData),
		MixDigest:   h.MixHash,
		Nonce:       types.EncodeNonce(h.Nonce),
	}
}

// HeaderFromEthereum converts a go-ethereum header. Its hash is taken from
// the go-ethereum header, which hashes the same 15 item encoding.
func HeaderFromEthereum(eh *types.Header) (*Header, error) {
	if eh.BaseFee != nil {
		return nil, fmt.Errorf("block %v: %w", eh.Number, ErrPostLondonHeader)
	}
	if len(eh.Extra) > MaxExtraDataSize {
		return nil, fmt.Errorf("invalid extradata length in block %v: %d: %w", eh.Number, len(eh.Extra), ErrExtraDataTooLong)
	}
	if eh.Number == nil || !eh.Number.IsUint64() {
		return nil, fmt.Errorf("invalid block number %v", eh.Number)
	}
	h := &Header{
		ParentHash:       eh.ParentHash,
		OmmersHash:       eh.UncleHash,
		Beneficiary:      eh.Coinbase,
		StateRoot:        eh.Root,
		TransactionsRoot: eh.TxHash,
		ReceiptsRoot:     eh.ReceiptHash,
		LogsBloom:        eh.Bloom,
		Number:           eh.Number.Uint64(),
		GasLimit:         eh.GasLimit,
		GasUsed:          eh.GasUsed,
		Timestamp:        eh.Time,
		MixHash:          eh.MixDigest,
		Nonce:            eh.Nonce.Uint64(),
	}
	if len(eh.Extra) > 0 {
		h.ExtraData = common.CopyBytes(eh.Extra)
	}
	if eh.Difficulty != nil {
		d, overflow := uint256.FromBig(eh.Difficulty)
		if overflow {
			return nil, fmt.Errorf("difficulty of block %d: %w", h.Number, ErrDifficultyOverflow)
		}
		h.Difficulty = *d
	}
	h.hash = eh.Hash()
	return h, nil
}

// BlockFromEthereum converts a go-ethereum block, body included.
func BlockFromEthereum(eb *types.Block) (*Block, error) {
	header, err := HeaderFromEthereum(eb.Header())
	if err != nil {
		return nil, err
	}
	ommers := make([]*Header, len(eb.Uncles()))
	for i, u := range eb.Uncles() {
		if ommers[i], err = HeaderFromEthereum(u); err != nil {
			return nil, fmt.Errorf("ommer %d: %w", i, err)
		}
	}
	return NewBlockFull(header, ommers, eb.Transactions()), nil
}
