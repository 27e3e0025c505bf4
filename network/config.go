package network

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"
)

// rawCheckpoints is the on-disk YAML shape of a checkpoint table:
//
//	network: ropsten
//	checkpoints:
//	  - number: 0
//	    hash: "0x4194..."
//	    timestamp: 0
type rawCheckpoints struct {
	Network     string `yaml:"network"`
	Checkpoints []struct {
		Number    uint64 `yaml:"number"`
		Hash      string `yaml:"hash"`
		Timestamp uint64 `yaml:"timestamp"`
	} `yaml:"checkpoints"`
}

// LoadCheckpoints parses a YAML checkpoint table.
func LoadCheckpoints(r io.Reader) (*Network, []Checkpoint, error) {
	var raw rawCheckpoints
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, fmt.Errorf("parse checkpoints: %w", err)
	}
	n, err := Lookup(raw.Network)
	if err != nil {
		return nil, nil, err
	}
	if len(raw.Checkpoints) == 0 {
		return nil, nil, fmt.Errorf("checkpoints for %s must not be empty", n)
	}
	table := make([]Checkpoint, len(raw.Checkpoints))
	for i, c := range raw.Checkpoints {
		b, err := hexutil.Decode(c.Hash)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid hash at index %d: %w", i, err)
		}
		if len(b) != common.HashLength {
			return nil, nil, fmt.Errorf("hash at index %d is %d bytes, want %d", i, len(b), common.HashLength)
		}
		table[i] = Checkpoint{Number: c.Number, Hash: common.BytesToHash(b), Timestamp: c.Timestamp}
	}
	return n, table, nil
}

// ApplyCheckpoints loads a YAML checkpoint table and returns a copy of r
// using it.
func (r *Registry) ApplyCheckpoints(in io.Reader) (*Registry, error) {
	n, table, err := LoadCheckpoints(in)
	if err != nil {
		return nil, err
	}
	return r.WithCheckpoints(n, table)
}
