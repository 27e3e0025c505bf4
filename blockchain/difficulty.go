package blockchain

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	difficultyBoundDivisor = 2048
	durationLimit          = 9
	minSigma               = -99
	bombDelay              = 3000000
	expDiffPeriod          = 1000000
)

// CanonicalDifficulty computes the difficulty header must have given its parent
// (yellow paper section 4.3.3, with the difficulty bomb offset by 3,000,000
// blocks). The result is never below the genesis difficulty.
//
// The formula cannot overflow for valid chain data; when it does, the inputs
// are bogus and ErrDifficultyOverflow is returned.
func CanonicalDifficulty(header, parent *Header, parentOmmersCount int, genesis *Header) (*uint256.Int, error) {
	if header.Number == 0 {
		return genesis.Difficulty.Clone(), nil
	}

	x := new(uint256.Int).Div(&parent.Difficulty, uint256.NewInt(difficultyBoundDivisor))

	var delay uint64
	if header.Timestamp > parent.Timestamp {
		delay = (header.Timestamp - parent.Timestamp) / durationLimit
	}
	y := int64(1)
	if parentOmmersCount > 0 {
		y = 2
	}
	sigma2 := y - int64(delay)
	if sigma2 < minSigma {
		sigma2 = minSigma
	}

	xSigma, overflow := new(uint256.Int).MulOverflow(x, uint256.NewInt(uint64(abs(sigma2))))
	if overflow {
		return nil, fmt.Errorf("scaling adjustment of block %d: %w", header.Number, ErrDifficultyOverflow)
	}

	r := new(uint256.Int)
	if sigma2 > 0 {
		_, overflow = r.AddOverflow(&parent.Difficulty, xSigma)
	} else {
		_, overflow = r.SubOverflow(&parent.Difficulty, xSigma)
	}
	if overflow {
		return nil, fmt.Errorf("adjusting parent difficulty of block %d: %w", header.Number, ErrDifficultyOverflow)
	}

	var fakeNumber uint64
	if header.Number > bombDelay {
		fakeNumber = header.Number - bombDelay
	}
	exp := int64(fakeNumber/expDiffPeriod) - 2
	if abs(exp) >= 256 {
		return nil, fmt.Errorf("bomb exponent %d of block %d: %w", exp, header.Number, ErrDifficultyOverflow)
	}
	epsilon := new(uint256.Int).Lsh(uint256.NewInt(1), uint(abs(exp)))

	if exp > 0 {
		_, overflow = r.AddOverflow(r, epsilon)
	} else {
		_, overflow = r.SubOverflow(r, epsilon)
	}
	if overflow {
		return nil, fmt.Errorf("applying bomb to block %d: %w", header.Number, ErrDifficultyOverflow)
	}

	if r.Gt(&genesis.Difficulty) {
		return r, nil
	}
	return genesis.Difficulty.Clone(), nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
