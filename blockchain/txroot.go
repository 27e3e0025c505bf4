package blockchain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// TransactionsRoot computes the binary hash tree root over the transaction
// hashes. Spans of one or two transactions hash their first and last hashes
// together (a single hash is paired with itself); larger spans split with the
// left half rounded up to an even count.
//
// An empty list has the empty trie root.
func TransactionsRoot(transactions []*types.Transaction) common.Hash {
	if len(transactions) == 0 {
		return types.EmptyRootHash
	}
	hashes := make([]common.Hash, len(transactions))
	for i, tx := range transactions {
		hashes[i] = tx.Hash()
	}
	return hashSpan(hashes, 0, len(hashes))
}

func hashSpan(hashes []common.Hash, index, count int) common.Hash {
	var left, right common.Hash
	if count <= 2 {
		left = hashes[index]
		right = hashes[index+count-1]
	} else {
		middle := count / 2
		if middle%2 == 1 {
			middle++
		}
		left = hashSpan(hashes, index, middle)
		right = hashSpan(hashes, index+middle, count-middle)
	}
	return crypto.Keccak256Hash(left.Bytes(), right.Bytes())
}

// TransactionsAreValid reports whether the transactions hash to the root
// committed in the header.
func (b *Block) TransactionsAreValid() bool {
	return b.header.TransactionsRoot == TransactionsRoot(b.transactions)
}
