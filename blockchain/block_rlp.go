package blockchain

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// RlpType selects the block encoding.
type RlpType int

const (
	// RlpNetwork is [header, transactions, ommers], as exchanged with peers.
	RlpNetwork RlpType = iota
	// RlpArchive appends the block status, for local persistence.
	RlpArchive
)

func (t RlpType) String() string {
	switch t {
	case RlpNetwork:
		return "network"
	case RlpArchive:
		return "archive"
	}
	return fmt.Sprintf("RlpType(%d)", int(t))
}

func (t RlpType) items() int {
	if t == RlpArchive {
		return 4
	}
	return 3
}

// Encode returns the block encoding of the given type. The header and ommers
// are written in their 15 item form and transactions in their signed form.
func (b *Block) Encode(t RlpType) ([]byte, error) {
	header, err := b.header.EncodeRLPWithNonce(true)
	if err != nil {
		return nil, err
	}
	ommers := make([]rlp.RawValue, len(b.ommers))
	for i, o := range b.ommers {
		if ommers[i], err = o.EncodeRLPWithNonce(true); err != nil {
			return nil, fmt.Errorf("encoding ommer %d: %w", i, err)
		}
	}
	transactions := b.transactions
	if transactions == nil {
		transactions = []*types.Transaction{}
	}
	items := []interface{}{rlp.RawValue(header), transactions, ommers}
	if t == RlpArchive {
		status, err := encodeStatus(&b.status)
		if err != nil {
			return nil, fmt.Errorf("encoding status: %w", err)
		}
		items = append(items, rlp.RawValue(status))
	}
	return rlp.EncodeToBytes(items)
}

// EncodeRLP implements rlp.Encoder with the network encoding.
func (b *Block) EncodeRLP(w io.Writer) error {
	enc, err := b.Encode(RlpNetwork)
	if err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// DecodeRLP implements rlp.Decoder for the network encoding.
func (b *Block) DecodeRLP(s *rlp.Stream) error {
	raw, err := s.Raw()
	if err != nil {
		// rlp.EOL must reach the enclosing list decoder unchanged.
		return err
	}
	dec, err := DecodeBlock(raw, RlpNetwork)
	if err != nil {
		return err
	}
	*b = *dec
	return nil
}

// DecodeBlock decodes a block of the given encoding type. A network block gets
// a fresh status; an archived one carries its own.
func DecodeBlock(raw []byte, t RlpType) (*Block, error) {
	items, err := splitItems(raw)
	if err != nil {
		return nil, decodeErr("block", "", "RLP list", err)
	}
	if len(items) != t.items() {
		return nil, decodeErr("block", "", fmt.Sprintf("%d items for %s encoding", t.items(), t),
			fmt.Errorf("got %d items", len(items)))
	}

	header, err := DecodeHeader(items[0])
	if err != nil {
		return nil, err
	}

	var transactions []*types.Transaction
	if err := rlp.DecodeBytes(items[1], &transactions); err != nil {
		return nil, decodeErr("block", "transactions", "signed transactions", err)
	}
	if transactions == nil {
		transactions = []*types.Transaction{}
	}

	ommerItems, err := splitItems(items[2])
	if err != nil {
		return nil, decodeErr("block", "ommers", "RLP list", err)
	}
	ommers := make([]*Header, len(ommerItems))
	for i, item := range ommerItems {
		if ommers[i], err = DecodeHeader(item); err != nil {
			return nil, fmt.Errorf("ommer %d: %w", i, err)
		}
	}

	b := NewBlock(header)
	b.UpdateBody(ommers, transactions)

	if t == RlpArchive {
		status, err := decodeStatus(items[3])
		if err != nil {
			return nil, err
		}
		if status.Hash != header.Hash() {
			return nil, decodeErr("block", "status", "hash "+header.Hash().Hex(), fmt.Errorf("got %s", status.Hash.Hex()))
		}
		b.status = status
	}
	return b, nil
}

// splitItems returns the raw encodings of the elements of an RLP list.
func splitItems(raw []byte) ([][]byte, error) {
	content, rest, err := rlp.SplitList(raw)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, rlp.ErrMoreThanOneValue
	}
	var items [][]byte
	for len(content) > 0 {
		_, _, tail, err := rlp.Split(content)
		if err != nil {
			return nil, err
		}
		items = append(items, content[:len(content)-len(tail)])
		content = tail
	}
	return items, nil
}
