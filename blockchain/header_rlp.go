package blockchain

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

const (
	headerItemsNoNonce = 13
	headerItemsFull    = 15
)

// EncodeRLPWithNonce returns the canonical encoding of the header: 15 items
// when withNonce is set, otherwise the 13 item form without mixHash and nonce.
func (h *Header) EncodeRLPWithNonce(withNonce bool) ([]byte, error) {
	if len(h.ExtraData) > MaxExtraDataSize {
		return nil, fmt.Errorf("encoding header %d: %w", h.Number, ErrExtraDataTooLong)
	}
	items := []interface{}{
		h.ParentHash,
		h.OmmersHash,
		h.Beneficiary,
		h.StateRoot,
		h.TransactionsRoot,
		h.ReceiptsRoot,
		h.LogsBloom,
		h.Difficulty.ToBig(),
		h.Number,
		h.GasLimit,
		h.GasUsed,
		h.Timestamp,
		h.ExtraData,
	}
	if withNonce {
		items = append(items, h.MixHash, types.EncodeNonce(h.Nonce))
	}
	return rlp.EncodeToBytes(items)
}

// EncodeRLP implements rlp.Encoder, writing the 15 item form.
func (h *Header) EncodeRLP(w io.Writer) error {
	enc, err := h.EncodeRLPWithNonce(true)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// DecodeHeader decodes a 13 or 15 item header. The hash is computed over b.
func DecodeHeader(b []byte) (*Header, error) {
	h := NewHeader()
	if err := h.decode(b); err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	raw, err := s.Raw()
	if err != nil {
		// rlp.EOL must reach the enclosing list decoder unchanged.
		return err
	}
	return h.decode(raw)
}

type headerField struct {
	name string
	ptr  interface{}
}

func (h *Header) decode(raw []byte) error {
	content, rest, err := rlp.SplitList(raw)
	if err != nil {
		return decodeErr("header", "", "RLP list", err)
	}
	if len(rest) != 0 {
		return decodeErr("header", "", "single RLP value", rlp.ErrMoreThanOneValue)
	}
	count, err := rlp.CountValues(content)
	if err != nil {
		return decodeErr("header", "", "RLP list", err)
	}
	if count != headerItemsNoNonce && count != headerItemsFull {
		return decodeErr("header", "", "13 or 15 items", fmt.Errorf("got %d items", count))
	}

	var (
		d          Header
		difficulty *big.Int
		nonce      types.BlockNonce
	)
	fields := []headerField{
		{"parentHash", &d.ParentHash},
		{"ommersHash", &d.OmmersHash},
		{"beneficiary", &d.Beneficiary},
		{"stateRoot", &d.StateRoot},
		{"transactionsRoot", &d.TransactionsRoot},
		{"receiptsRoot", &d.ReceiptsRoot},
		{"logsBloom", &d.LogsBloom},
		{"difficulty", &difficulty},
		{"number", &d.Number},
		{"gasLimit", &d.GasLimit},
		{"gasUsed", &d.GasUsed},
		{"timestamp", &d.Timestamp},
		{"extraData", &d.ExtraData},
	}
	if count == headerItemsFull {
		fields = append(fields,
			headerField{"mixHash", &d.MixHash},
			headerField{"nonce", &nonce},
		)
	}

	s := rlp.NewStream(bytes.NewReader(raw), uint64(len(raw)))
	if _, err := s.List(); err != nil {
		return decodeErr("header", "", "RLP list", err)
	}
	for _, f := range fields {
		if err := s.Decode(f.ptr); err != nil {
			return decodeErr("header", f.name, "", err)
		}
	}
	if err := s.ListEnd(); err != nil {
		return decodeErr("header", "", "end of list", err)
	}

	if len(d.ExtraData) > MaxExtraDataSize {
		return decodeErr("header", "extraData", "at most 32 bytes", ErrExtraDataTooLong)
	}
	if len(d.ExtraData) == 0 {
		d.ExtraData = nil
	}
	diff, overflow := uint256.FromBig(difficulty)
	if overflow {
		return decodeErr("header", "difficulty", "256-bit integer", ErrDifficultyOverflow)
	}
	d.Difficulty = *diff
	d.Nonce = nonce.Uint64()
	d.hash = crypto.Keccak256Hash(raw)

	*h = d
	return nil
}
