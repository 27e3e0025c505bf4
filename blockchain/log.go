package blockchain

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type TransactionStatusType int

const (
	TransactionStatusUnknown TransactionStatusType = iota
	TransactionStatusQueued
	TransactionStatusPending
	TransactionStatusIncluded
	TransactionStatusErrored
)

func (t TransactionStatusType) String() string {
	switch t {
	case TransactionStatusQueued:
		return "queued"
	case TransactionStatusPending:
		return "pending"
	case TransactionStatusIncluded:
		return "included"
	case TransactionStatusErrored:
		return "errored"
	}
	return "unknown"
}

// TransactionStatus records where a transaction (or a log it emitted) stands.
// The block fields are only meaningful once Type is TransactionStatusIncluded.
type TransactionStatus struct {
	Type             TransactionStatusType
	BlockHash        common.Hash
	BlockNumber      uint64
	TransactionIndex uint64
	GasUsed          uint64
}

func IncludedStatus(blockHash common.Hash, blockNumber, transactionIndex, gasUsed uint64) TransactionStatus {
	return TransactionStatus{
		Type:             TransactionStatusIncluded,
		BlockHash:        blockHash,
		BlockNumber:      blockNumber,
		TransactionIndex: transactionIndex,
		GasUsed:          gasUsed,
	}
}

// ExtractIncluded returns the inclusion details, or ok == false when the
// status is not included.
func (s TransactionStatus) ExtractIncluded() (blockHash common.Hash, blockNumber, transactionIndex uint64, ok bool) {
	if s.Type != TransactionStatusIncluded {
		return common.Hash{}, 0, 0, false
	}
	return s.BlockHash, s.BlockNumber, s.TransactionIndex, true
}

// LogIdentifier names a log by the transaction that emitted it and its
// position in the block's logs.
type LogIdentifier struct {
	TransactionHash common.Hash
	Index           uint64
}

type Log struct {
	Address    common.Address
	Topics     []common.Hash
	Data       []byte
	Identifier LogIdentifier
	Status     TransactionStatus
}

// Hash identifies the log; it only depends on the identifier.
func (l *Log) Hash() common.Hash {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], l.Identifier.Index)
	return crypto.Keccak256Hash(l.Identifier.TransactionHash.Bytes(), idx[:])
}

// LogFromEthereum converts a go-ethereum log. Logs that are not marked removed
// are taken to be included in their block.
func LogFromEthereum(el *types.Log) *Log {
	l := &Log{
		Address: el.Address,
		Topics:  append([]common.Hash(nil), el.Topics...),
		Data:    common.CopyBytes(el.Data),
		Identifier: LogIdentifier{
			TransactionHash: el.TxHash,
			Index:           uint64(el.Index),
		},
	}
	if !el.Removed {
		l.Status = IncludedStatus(el.BlockHash, el.BlockNumber, uint64(el.TxIndex), 0)
	}
	return l
}

func (l *Log) ToEthereum() *types.Log {
	el := &types.Log{
		Address: l.Address,
		Topics:  append([]common.Hash(nil), l.Topics...),
		Data:    common.CopyBytes(l.Data),
		TxHash:  l.Identifier.TransactionHash,
		Index:   uint(l.Identifier.Index),
	}
	if blockHash, blockNumber, txIndex, ok := l.Status.ExtractIncluded(); ok {
		el.BlockHash = blockHash
		el.BlockNumber = blockNumber
		el.TxIndex = uint(txIndex)
	} else {
		el.Removed = true
	}
	return el
}
