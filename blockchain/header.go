package blockchain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// MaxExtraDataSize is the largest extraData a header may carry.
const MaxExtraDataSize = 32

// Header is an Ethereum block header as carried on the wire before London.
//
// The hash is fixed when the header is decoded (over the exact input bytes) or
// when Identify is called; it is never recomputed implicitly.
type Header struct {
	ParentHash       common.Hash
	OmmersHash       common.Hash
	Beneficiary      common.Address
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptsRoot     common.Hash
	LogsBloom        types.Bloom
	Difficulty       uint256.Int
	Number           uint64
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte

	// Only present in the 15 item form.
	MixHash common.Hash
	Nonce   uint64

	hash     common.Hash
	released bool
}

// NewHeaderMinimal returns a header carrying only its identity and chain
// position, as synthesized from a checkpoint.
func NewHeaderMinimal(hash common.Hash, number, timestamp uint64) *Header {
	return &Header{
		hash:      hash,
		Number:    number,
		Timestamp: timestamp,
	}
}

// NewHeader returns a zero header to be filled in by a decoder or a builder.
func NewHeader() *Header {
	return &Header{}
}

// Copy returns an independent header with identical field values.
func (h *Header) Copy() *Header {
	c := *h
	c.released = false
	if h.ExtraData != nil {
		c.ExtraData = common.CopyBytes(h.ExtraData)
	}
	return &c
}

// Release invalidates the header. Releasing a header that was never
// identified, or releasing twice, is a programming error.
func (h *Header) Release() {
	if h.released {
		panic("blockchain: header released twice")
	}
	if h.hash == (common.Hash{}) {
		panic("blockchain: releasing header with empty hash")
	}
	*h = Header{released: true}
}

// Released reports whether Release has been called.
func (h *Header) Released() bool { return h.released }

// Identify sets the header hash to keccak256 of its 15 item encoding and
// returns it. Decoded headers already carry the hash of their wire bytes.
func (h *Header) Identify() (common.Hash, error) {
	enc, err := h.EncodeRLPWithNonce(true)
	if err != nil {
		return common.Hash{}, err
	}
	h.hash = crypto.Keccak256Hash(enc)
	return h.hash, nil
}

func (h *Header) Hash() common.Hash { return h.hash }

// IsValid is a placeholder for proof-of-work and format checks.
func (h *Header) IsValid() bool {
	return true
}

// Equal compares headers by hash.
func (h *Header) Equal(o *Header) bool {
	return h == o || h.hash == o.hash
}

// Compare orders headers by number, then timestamp. It returns -1, 0 or +1.
func Compare(a, b *Header) int {
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	}
	return 0
}

// MatchBloom reports whether every bit set in filter is also set in the
// header's logs bloom.
func (h *Header) MatchBloom(filter types.Bloom) bool {
	for i := range filter {
		if h.LogsBloom[i]&filter[i] != filter[i] {
			return false
		}
	}
	return true
}

// MatchAddress reports whether the logs bloom may reference addr, either as a
// log's emitter or as an address-valued topic.
func (h *Header) MatchAddress(addr common.Address) bool {
	return types.BloomLookup(h.LogsBloom, addr) ||
		types.BloomLookup(h.LogsBloom, common.BytesToHash(addr.Bytes()))
}

func (h *Header) MatchTopic(topic common.Hash) bool {
	return types.BloomLookup(h.LogsBloom, topic)
}

// MatchAddressTopic reports whether the bloom may contain a log from addr
// with the given topic.
func (h *Header) MatchAddressTopic(addr common.Address, topic common.Hash) bool {
	filter := BloomFilterForAddress(addr)
	filter.Add(topic.Bytes())
	return h.MatchBloom(filter)
}

func BloomFilterForAddress(addr common.Address) types.Bloom {
	var b types.Bloom
	b.Add(addr.Bytes())
	return b
}

func BloomFilterForTopic(topic common.Hash) types.Bloom {
	var b types.Bloom
	b.Add(topic.Bytes())
	return b
}
