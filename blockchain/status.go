package blockchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RequestState tracks one kind of block data being fetched from the network.
// Only the low two bits are significant on the wire.
type RequestState uint8

const (
	RequestNone RequestState = iota
	RequestPending
	RequestComplete
)

func (r RequestState) String() string {
	switch r {
	case RequestNone:
		return "none"
	case RequestPending:
		return "pending"
	case RequestComplete:
		return "complete"
	}
	return fmt.Sprintf("RequestState(%d)", uint8(r))
}

// Status records which of a block's transactions, logs and account state
// have been requested and retrieved. The data fields are only set when the
// corresponding request is complete.
type Status struct {
	Hash common.Hash

	TransactionRequest  RequestState
	LogRequest          RequestState
	AccountStateRequest RequestState

	Transactions []*types.Transaction
	Logs         []*Log
	AccountState *types.StateAccount

	Error bool
}

func newStatus(hash common.Hash) Status {
	return Status{Hash: hash}
}

// IsComplete reports whether no request is pending.
func (s *Status) IsComplete() bool {
	return s.TransactionRequest != RequestPending &&
		s.LogRequest != RequestPending &&
		s.AccountStateRequest != RequestPending
}

func (s *Status) release() {
	s.Transactions = nil
	s.Logs = nil
	s.AccountState = nil
}

// request moves a request to NONE or PENDING. Completion goes through
// complete, and a completed request must be reset to NONE before it can be
// requested again.
func request(kind string, cur *RequestState, next RequestState) {
	switch {
	case next != RequestNone && next != RequestPending:
		panic(fmt.Sprintf("blockchain: %s request set to %s without data", kind, next))
	case *cur == RequestComplete && next == RequestPending:
		panic(fmt.Sprintf("blockchain: %s request is complete, reset before requesting again", kind))
	}
	*cur = next
}

func complete(kind string, cur *RequestState) {
	if *cur != RequestPending {
		panic(fmt.Sprintf("blockchain: %s completed while %s", kind, *cur))
	}
	*cur = RequestComplete
}

// Status returns a copy of the block's status.
func (b *Block) Status() Status {
	return b.status
}

func (b *Block) HasStatusComplete() bool {
	return b.status.IsComplete()
}

func (b *Block) HasStatusError() bool {
	return b.status.Error
}

func (b *Block) ReportStatusError(err bool) {
	b.status.Error = err
}

func (b *Block) HasStatusTransactionsRequest(state RequestState) bool {
	return b.status.TransactionRequest == state
}

// ReportStatusTransactionsRequest sets the transaction request to NONE or
// PENDING. Resetting a complete request drops its transactions.
func (b *Block) ReportStatusTransactionsRequest(state RequestState) {
	request("transactions", &b.status.TransactionRequest, state)
	if state == RequestNone {
		b.status.Transactions = nil
	}
}

// ReportStatusTransactions completes a pending transaction request.
func (b *Block) ReportStatusTransactions(transactions []*types.Transaction) {
	complete("transactions", &b.status.TransactionRequest)
	b.status.Transactions = transactions
}

func (b *Block) HasStatusLogsRequest(state RequestState) bool {
	return b.status.LogRequest == state
}

func (b *Block) ReportStatusLogsRequest(state RequestState) {
	request("logs", &b.status.LogRequest, state)
	if state == RequestNone {
		b.status.Logs = nil
	}
}

func (b *Block) ReportStatusLogs(logs []*Log) {
	complete("logs", &b.status.LogRequest)
	b.status.Logs = logs
}

func (b *Block) HasStatusAccountStateRequest(state RequestState) bool {
	return b.status.AccountStateRequest == state
}

func (b *Block) ReportStatusAccountStateRequest(state RequestState) {
	request("account state", &b.status.AccountStateRequest, state)
	if state == RequestNone {
		b.status.AccountState = nil
	}
}

func (b *Block) ReportStatusAccountState(state *types.StateAccount) {
	complete("account state", &b.status.AccountStateRequest)
	b.status.AccountState = state
}

// HasStatusTransaction reports whether the completed transaction request
// returned tx.
func (b *Block) HasStatusTransaction(tx *types.Transaction) bool {
	if b.status.TransactionRequest != RequestComplete {
		return false
	}
	hash := tx.Hash()
	for _, t := range b.status.Transactions {
		if t.Hash() == hash {
			return true
		}
	}
	return false
}

func (b *Block) HasStatusLog(log *Log) bool {
	if b.status.LogRequest != RequestComplete {
		return false
	}
	hash := log.Hash()
	for _, l := range b.status.Logs {
		if l.Hash() == hash {
			return true
		}
	}
	return false
}
