package blockchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NextNone is the Next link of a block that is not chained to another.
var NextNone = common.Hash{}

// Block is a header plus, once known, its transactions and ommers, and the
// status of the wallet-relevant data fetched for it. A block exclusively owns
// its header, ommers and transactions.
//
// A nil ommers or transactions slice means the body is not known yet; an empty
// one means the block has none.
type Block struct {
	header       *Header
	ommers       []*Header
	transactions []*types.Transaction
	status       Status

	// next names another block in a caller-owned Set.
	next     common.Hash
	released bool
}

// NewBlock wraps header with no body.
func NewBlock(header *Header) *Block {
	return &Block{
		header: header,
		status: newStatus(header.Hash()),
		next:   NextNone,
	}
}

// NewBlockMinimal returns a body-less block over a minimal header, used to
// track chain position only.
func NewBlockMinimal(hash common.Hash, number, timestamp uint64) *Block {
	return NewBlock(NewHeaderMinimal(hash, number, timestamp))
}

// NewBlockFull returns a block owning header, ommers and transactions. The
// slices are copied; the entities they hold now belong to the block.
func NewBlockFull(header *Header, ommers []*Header, transactions []*types.Transaction) *Block {
	b := NewBlock(header)
	b.UpdateBody(
		append(make([]*Header, 0, len(ommers)), ommers...),
		append(make([]*types.Transaction, 0, len(transactions)), transactions...),
	)
	return b
}

// UpdateBody attaches ommers and transactions to a block first created from
// its header alone.
func (b *Block) UpdateBody(ommers []*Header, transactions []*types.Transaction) {
	b.ommers = ommers
	b.transactions = transactions
}

// Release releases the header, every ommer and transaction, and the status.
func (b *Block) Release() {
	if b.released {
		panic(fmt.Sprintf("blockchain: block %d released twice", b.header.Number))
	}
	b.header.Release()
	for _, o := range b.ommers {
		o.Release()
	}
	b.ommers = nil
	b.transactions = nil
	b.status.release()
	b.next = NextNone
	b.released = true
}

func (b *Block) Released() bool { return b.released }

// IsValid checks the header (unless skipped) and the transactions root.
func (b *Block) IsValid(skipHeaderValidation bool) bool {
	if !skipHeaderValidation && !b.header.IsValid() {
		return false
	}
	return b.TransactionsAreValid()
}

func (b *Block) Header() *Header { return b.header }

func (b *Block) Hash() common.Hash { return b.header.Hash() }

func (b *Block) Number() uint64 { return b.header.Number }

func (b *Block) Timestamp() uint64 { return b.header.Timestamp }

// HasBody reports whether transactions and ommers have been attached.
func (b *Block) HasBody() bool {
	return b.transactions != nil && b.ommers != nil
}

func (b *Block) Transactions() []*types.Transaction { return b.transactions }

func (b *Block) TransactionCount() int { return len(b.transactions) }

// Transaction returns the transaction at index, or nil if out of range.
func (b *Block) Transaction(index int) *types.Transaction {
	if index < 0 || index >= len(b.transactions) {
		return nil
	}
	return b.transactions[index]
}

func (b *Block) Ommers() []*Header { return b.ommers }

func (b *Block) OmmerCount() int { return len(b.ommers) }

func (b *Block) Ommer(index int) *Header {
	if index < 0 || index >= len(b.ommers) {
		return nil
	}
	return b.ommers[index]
}

// LinkLogsWithTransactions stamps each fetched log with the hash of the
// transaction that emitted it. Both the transaction and log requests must be
// complete, and every log must be included with a transaction index.
func (b *Block) LinkLogsWithTransactions() {
	if b.status.LogRequest != RequestComplete || b.status.TransactionRequest != RequestComplete {
		panic(fmt.Sprintf("blockchain: linking logs of block %d with transactions %s and logs %s",
			b.header.Number, b.status.TransactionRequest, b.status.LogRequest))
	}
	for _, log := range b.status.Logs {
		_, _, index, ok := log.Status.ExtractIncluded()
		if !ok {
			panic(fmt.Sprintf("blockchain: log %d of block %d is not included", log.Identifier.Index, b.header.Number))
		}
		if index >= uint64(len(b.transactions)) {
			panic(fmt.Sprintf("blockchain: log %d of block %d references transaction %d of %d",
				log.Identifier.Index, b.header.Number, index, len(b.transactions)))
		}
		log.Identifier = LogIdentifier{
			TransactionHash: b.transactions[index].Hash(),
			Index:           log.Identifier.Index,
		}
	}
}

// Next returns the hash of the block chained after b, if any.
func (b *Block) Next() (common.Hash, bool) {
	return b.next, b.next != NextNone
}

// SetNext links b to the block with the given hash and returns the previous
// link.
func (b *Block) SetNext(next common.Hash) common.Hash {
	old := b.next
	b.next = next
	return old
}

func (b *Block) HasNext() bool { return b.next != NextNone }

func (b *Block) ClearNext() common.Hash { return b.SetNext(NextNone) }
