package blockchain

import (
	"github.com/ethereum/go-ethereum/common"
)

// Set holds blocks by header hash. It is the owner that Block.Next links
// resolve against, so removing a block never leaves a dangling link.
type Set struct {
	blocks map[common.Hash]*Block
}

func NewSet() *Set {
	return &Set{blocks: make(map[common.Hash]*Block)}
}

// Add inserts b, returning the block it replaced, if any.
func (s *Set) Add(b *Block) *Block {
	old := s.blocks[b.Hash()]
	s.blocks[b.Hash()] = b
	return old
}

func (s *Set) Get(hash common.Hash) (*Block, bool) {
	b, ok := s.blocks[hash]
	return b, ok
}

func (s *Set) Has(hash common.Hash) bool {
	_, ok := s.blocks[hash]
	return ok
}

// Remove drops the block from the set without releasing it; ownership passes
// to the caller.
func (s *Set) Remove(hash common.Hash) (*Block, bool) {
	b, ok := s.blocks[hash]
	if ok {
		delete(s.blocks, hash)
	}
	return b, ok
}

func (s *Set) Len() int { return len(s.blocks) }

// Next resolves b's next link within the set.
func (s *Set) Next(b *Block) (*Block, bool) {
	hash, ok := b.Next()
	if !ok {
		return nil, false
	}
	return s.Get(hash)
}

func (s *Set) Each(fn func(*Block)) {
	for _, b := range s.blocks {
		fn(b)
	}
}

// Release releases every block and empties the set.
func (s *Set) Release() {
	for hash, b := range s.blocks {
		b.Release()
		delete(s.blocks, hash)
	}
}
