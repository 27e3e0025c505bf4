package blockchain

import (
	"fmt"
)

const (
	gasLimitBoundDivisor = 1024
	minGasLimit          = 5000
)

// CheckConsistency checks header against its parent. A nil parent is always
// consistent. The rules are:
//
//	gasUsed <= gasLimit
//	|gasLimit - parent.gasLimit| < parent.gasLimit/1024, gasLimit >= 5000
//	timestamp > parent.timestamp
//	number == parent.number + 1
//	len(extraData) <= 32
//	difficulty == CanonicalDifficulty(header, parent, parentOmmersCount, genesis)
func (h *Header) CheckConsistency(parent *Header, parentOmmersCount int, genesis *Header) error {
	if parent == nil {
		return nil
	}
	fail := func(rule string, err error) error {
		return &ConsistencyError{Rule: rule, Number: h.Number, Err: err}
	}

	if h.GasUsed > h.GasLimit {
		return fail("gasUsed", fmt.Errorf("used %d above limit %d", h.GasUsed, h.GasLimit))
	}
	bound := parent.GasLimit / gasLimitBoundDivisor
	drift := h.GasLimit - parent.GasLimit
	if h.GasLimit < parent.GasLimit {
		drift = parent.GasLimit - h.GasLimit
	}
	if drift >= bound {
		return fail("gasLimit", fmt.Errorf("limit %d drifts from parent %d by %d or more", h.GasLimit, parent.GasLimit, bound))
	}
	if h.GasLimit < minGasLimit {
		return fail("gasLimit", fmt.Errorf("limit %d below %d", h.GasLimit, minGasLimit))
	}
	if h.Timestamp <= parent.Timestamp {
		return fail("timestamp", fmt.Errorf("%d not after parent %d", h.Timestamp, parent.Timestamp))
	}
	if h.Number != parent.Number+1 {
		return fail("number", fmt.Errorf("parent is %d", parent.Number))
	}
	if len(h.ExtraData) > MaxExtraDataSize {
		return fail("extraData", ErrExtraDataTooLong)
	}

	canonical, err := CanonicalDifficulty(h, parent, parentOmmersCount, genesis)
	if err != nil {
		return fail("difficulty", err)
	}
	if !canonical.Eq(&h.Difficulty) {
		return fail("difficulty", fmt.Errorf("have %s, want %s", h.Difficulty.ToBig(), canonical.ToBig()))
	}
	return nil
}

func (h *Header) IsConsistent(parent *Header, parentOmmersCount int, genesis *Header) bool {
	return h.CheckConsistency(parent, parentOmmersCount, genesis) == nil
}
