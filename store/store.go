// Package store persists blocks, with their fetch status, in a LevelDB
// database using the archival block encoding.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/henridf/lightblock/blockchain"
)

var ErrNotFound = errors.New("block not found")

const (
	prefixBlock  = "blk:"
	prefixNumber = "num:"
)

func blockKey(hash common.Hash) []byte {
	return append([]byte(prefixBlock), hash.Bytes()...)
}

func numberKey(number uint64) []byte {
	key := make([]byte, len(prefixNumber)+8)
	copy(key, prefixNumber)
	binary.BigEndian.PutUint64(key[len(prefixNumber):], number)
	return key
}

// Store is safe for concurrent use. The number index holds the most recently
// stored block at each height.
type Store struct {
	db  *leveldb.DB
	log zerolog.Logger
}

func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB at %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Opened block store")
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	s.log.Debug().Msg("Closing block store")
	return s.db.Close()
}

// Put stores b under its hash and indexes it by number.
func (s *Store) Put(b *blockchain.Block) error {
	enc, err := b.Encode(blockchain.RlpArchive)
	if err != nil {
		return fmt.Errorf("encoding block %d: %w", b.Number(), err)
	}
	batch := new(leveldb.Batch)
	batch.Put(blockKey(b.Hash()), enc)
	batch.Put(numberKey(b.Number()), b.Hash().Bytes())
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("writing block %d: %w", b.Number(), err)
	}
	return nil
}

func (s *Store) Get(hash common.Hash) (*blockchain.Block, error) {
	enc, err := s.db.Get(blockKey(hash), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", hash.Hex(), ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	b, err := blockchain.DecodeBlock(enc, blockchain.RlpArchive)
	if err != nil {
		s.log.Warn().Str("hash", hash.Hex()).Err(err).Msg("Corrupt block record")
		return nil, err
	}
	return b, nil
}

func (s *Store) GetByNumber(number uint64) (*blockchain.Block, error) {
	hash, err := s.db.Get(numberKey(number), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("block %d: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.Get(common.BytesToHash(hash))
}

func (s *Store) Has(hash common.Hash) (bool, error) {
	return s.db.Has(blockKey(hash), nil)
}

// Delete removes the block, and its number index entry if it points at it.
func (s *Store) Delete(hash common.Hash) error {
	b, err := s.Get(hash)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Delete(blockKey(hash))
	indexed, err := s.db.Get(numberKey(b.Number()), nil)
	if err == nil && common.BytesToHash(indexed) == hash {
		batch.Delete(numberKey(b.Number()))
	}
	return s.db.Write(batch, nil)
}
