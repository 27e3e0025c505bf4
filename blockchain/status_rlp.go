package blockchain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

const statusItems = 6

// statusRLP is the archival shape of a Status. The transactions and logs
// slots are reserved and always written as empty strings.
type statusRLP struct {
	Hash         common.Hash
	Flags        uint64
	Transactions rlp.RawValue
	Logs         rlp.RawValue
	AccountState types.StateAccount
	Error        uint64
}

func packRequests(s *Status) uint64 {
	return uint64(s.TransactionRequest)<<4 |
		uint64(s.LogRequest)<<2 |
		uint64(s.AccountStateRequest)
}

func encodeStatus(s *Status) ([]byte, error) {
	enc := statusRLP{
		Hash:         s.Hash,
		Flags:        packRequests(s),
		Transactions: rlp.EmptyString,
		Logs:         rlp.EmptyString,
		AccountState: types.StateAccount{Balance: new(big.Int)},
	}
	if s.AccountState != nil {
		enc.AccountState = *s.AccountState
		if enc.AccountState.Balance == nil {
			enc.AccountState.Balance = new(big.Int)
		}
	}
	if s.Error {
		enc.Error = 1
	}
	return rlp.EncodeToBytes(&enc)
}

func decodeStatus(raw []byte) (Status, error) {
	content, _, err := rlp.SplitList(raw)
	if err != nil {
		return Status{}, decodeErr("status", "", "RLP list", err)
	}
	count, err := rlp.CountValues(content)
	if err != nil {
		return Status{}, decodeErr("status", "", "RLP list", err)
	}
	if count != statusItems {
		return Status{}, decodeErr("status", "", "6 items", fmt.Errorf("got %d items", count))
	}

	var dec statusRLP
	if err := rlp.DecodeBytes(raw, &dec); err != nil {
		return Status{}, decodeErr("status", "", "", err)
	}

	s := Status{
		Hash:                dec.Hash,
		TransactionRequest:  RequestState(0x3 & (dec.Flags >> 4)),
		LogRequest:          RequestState(0x3 & (dec.Flags >> 2)),
		AccountStateRequest: RequestState(0x3 & dec.Flags),
		Error:               dec.Error != 0,
	}
	for _, r := range []RequestState{s.TransactionRequest, s.LogRequest, s.AccountStateRequest} {
		if r > RequestComplete {
			return Status{}, decodeErr("status", "flags", "request states none, pending or complete", fmt.Errorf("flags %#x", dec.Flags))
		}
	}
	if s.AccountStateRequest == RequestComplete {
		account := dec.AccountState
		s.AccountState = &account
	}
	return s, nil
}
