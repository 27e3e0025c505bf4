package network

import (
	"fmt"

	"github.com/henridf/lightblock/blockchain"
)

// Registry maps networks to their genesis header and checkpoint table. It is
// immutable once built; the package default is built at init.
type Registry struct {
	genesis     map[*Network]*blockchain.Header
	checkpoints map[*Network][]Checkpoint
}

// NewRegistry builds a registry from the compiled-in tables.
func NewRegistry() *Registry {
	r := &Registry{
		genesis:     make(map[*Network]*blockchain.Header, len(genesisRecords)),
		checkpoints: make(map[*Network][]Checkpoint, len(checkpointTables)),
	}
	for n, g := range genesisRecords {
		r.genesis[n] = g.header()
	}
	for n, table := range checkpointTables {
		r.checkpoints[n] = append([]Checkpoint(nil), table...)
	}
	return r
}

var defaultRegistry = NewRegistry()

// Default returns the registry built from the compiled-in tables.
func Default() *Registry {
	return defaultRegistry
}

// WithCheckpoints returns a copy of r using table for n. The table must be
// non-empty and strictly ascending by number.
func (r *Registry) WithCheckpoints(n *Network, table []Checkpoint) (*Registry, error) {
	if _, ok := r.genesis[n]; !ok {
		return nil, fmt.Errorf("%s: %w", n, ErrUnknownNetwork)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%s: empty checkpoint table", n)
	}
	for i := 1; i < len(table); i++ {
		if table[i].Number <= table[i-1].Number {
			return nil, fmt.Errorf("%s: checkpoint %d (block %d) not above block %d", n, i, table[i].Number, table[i-1].Number)
		}
	}
	c := &Registry{
		genesis:     r.genesis,
		checkpoints: make(map[*Network][]Checkpoint, len(r.checkpoints)),
	}
	for k, v := range r.checkpoints {
		c.checkpoints[k] = v
	}
	c.checkpoints[n] = append([]Checkpoint(nil), table...)
	return c, nil
}

// GenesisHeader returns a copy of the network's genesis header, which the
// caller owns.
func (r *Registry) GenesisHeader(n *Network) (*blockchain.Header, error) {
	g, ok := r.genesis[n]
	if !ok {
		return nil, fmt.Errorf("%v: %w", n, ErrUnknownNetwork)
	}
	return g.Copy(), nil
}

func (r *Registry) GenesisBlock(n *Network) (*blockchain.Block, error) {
	h, err := r.GenesisHeader(n)
	if err != nil {
		return nil, err
	}
	return blockchain.NewBlock(h), nil
}

// Checkpoints returns a copy of the network's checkpoint table.
func (r *Registry) Checkpoints(n *Network) []Checkpoint {
	return append([]Checkpoint(nil), r.checkpoints[n]...)
}

func (r *Registry) CheckpointLatest(n *Network) (Checkpoint, bool) {
	return latest(r.checkpoints[n])
}

// CheckpointByNumber returns the highest checkpoint at or below number.
func (r *Registry) CheckpointByNumber(n *Network, number uint64) (Checkpoint, bool) {
	return byNumber(r.checkpoints[n], number)
}

// CheckpointByTimestamp returns the last checkpoint at or before timestamp.
func (r *Registry) CheckpointByTimestamp(n *Network, timestamp uint64) (Checkpoint, bool) {
	return byTimestamp(r.checkpoints[n], timestamp)
}

func GenesisHeader(n *Network) (*blockchain.Header, error) {
	return defaultRegistry.GenesisHeader(n)
}

func GenesisBlock(n *Network) (*blockchain.Block, error) {
	return defaultRegistry.GenesisBlock(n)
}

func CheckpointLatest(n *Network) (Checkpoint, bool) {
	return defaultRegistry.CheckpointLatest(n)
}

func CheckpointByNumber(n *Network, number uint64) (Checkpoint, bool) {
	return defaultRegistry.CheckpointByNumber(n, number)
}

func CheckpointByTimestamp(n *Network, timestamp uint64) (Checkpoint, bool) {
	return defaultRegistry.CheckpointByTimestamp(n, timestamp)
}
