package blockchain

import (
	"errors"
	"fmt"
)

var (
	ErrExtraDataTooLong   = errors.New("extra data exceeds 32 bytes")
	ErrDifficultyOverflow = errors.New("difficulty arithmetic overflow")
	ErrPostLondonHeader   = errors.New("header carries a base fee")
)

// DecodeError reports malformed wire data. Kind names the entity being decoded
// (header, block, status), Field the item that failed.
type DecodeError struct {
	Kind     string
	Field    string
	Expected string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decoding %s", e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %s", e.Field)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(" (expected %s)", e.Expected)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(kind, field, expected string, err error) error {
	return &DecodeError{Kind: kind, Field: field, Expected: expected, Err: err}
}

// ConsistencyError names the parent-linkage rule a header broke.
type ConsistencyError struct {
	Rule   string
	Number uint64
	Err    error
}

func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("header %d inconsistent with parent: %s: %v", e.Number, e.Rule, e.Err)
	}
	return fmt.Sprintf("header %d inconsistent with parent: %s", e.Number, e.Rule)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }
