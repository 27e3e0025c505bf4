package network

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointTablesStartAtGenesis(t *testing.T) {
	for _, n := range Networks() {
		table := Default().Checkpoints(n)
		require.NotEmpty(t, table, n.Name)
		g, err := GenesisHeader(n)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), table[0].Number)
		assert.Equal(t, g.Hash(), table[0].Hash)
		for i := 1; i < len(table); i++ {
			assert.Greater(t, table[i].Number, table[i-1].Number)
		}
	}
}

func TestCheckpointLookups(t *testing.T) {
	c, ok := CheckpointLatest(Ropsten)
	require.True(t, ok)
	assert.Equal(t, uint64(3500000), c.Number)

	c, ok = CheckpointByNumber(Ropsten, 3499999)
	require.True(t, ok)
	assert.Equal(t, uint64(0), c.Number)
	c, ok = CheckpointByNumber(Ropsten, 3500000)
	require.True(t, ok)
	assert.Equal(t, uint64(3500000), c.Number)

	c, ok = CheckpointByTimestamp(Rinkeby, 1529570085)
	require.True(t, ok)
	assert.Equal(t, params.RinkebyGenesisHash, c.Hash)
	c, ok = CheckpointByTimestamp(Rinkeby, 1529570086)
	require.True(t, ok)
	assert.Equal(t, uint64(2500000), c.Number)

	_, ok = CheckpointByTimestamp(Rinkeby, 0x58ee40b9)
	assert.False(t, ok, "before genesis")

	c, ok = CheckpointLatest(Mainnet)
	require.True(t, ok)
	assert.Equal(t, params.MainnetGenesisHash, c.Hash)
}

func TestCheckpointHeader(t *testing.T) {
	c, ok := CheckpointLatest(Rinkeby)
	require.True(t, ok)
	h := c.Header()
	assert.Equal(t, c.Hash, h.Hash())
	assert.Equal(t, c.Number, h.Number)
	assert.Equal(t, c.Timestamp, h.Timestamp)
}

func TestWithCheckpoints(t *testing.T) {
	table := []Checkpoint{
		{Number: 10, Hash: common.Hash{1}, Timestamp: 100},
		{Number: 20, Hash: common.Hash{2}, Timestamp: 200},
	}
	r, err := Default().WithCheckpoints(Mainnet, table)
	require.NoError(t, err)

	_, ok := r.CheckpointByNumber(Mainnet, 9)
	assert.False(t, ok)
	c, ok := r.CheckpointByNumber(Mainnet, 15)
	require.True(t, ok)
	assert.Equal(t, uint64(10), c.Number)
	c, ok = r.CheckpointByTimestamp(Mainnet, 1000)
	require.True(t, ok)
	assert.Equal(t, uint64(20), c.Number)

	table[0].Number = 99
	c, _ = r.CheckpointByNumber(Mainnet, 15)
	assert.Equal(t, uint64(10), c.Number, "table is copied")

	c, _ = CheckpointLatest(Mainnet)
	assert.Equal(t, uint64(0), c.Number, "default registry unchanged")

	_, err = Default().WithCheckpoints(Mainnet, []Checkpoint{{Number: 5}, {Number: 5}})
	assert.Error(t, err)
	_, err = Default().WithCheckpoints(Mainnet, nil)
	assert.Error(t, err)
	_, err = Default().WithCheckpoints(&Network{Name: "kovan"}, table)
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
}

func TestLoadCheckpoints(t *testing.T) {
	const doc = `
network: testnet
checkpoints:
  - number: 0
    hash: "0x41941023680923e0fe4d74a34bdac8141f2540e3ae90623718e47d66d1ca4a2d"
    timestamp: 0
  - number: 4000000
    hash: "0x0000000000000000000000000000000000000000000000000000000000000004"
    timestamp: 1535000000
`
	n, table, err := LoadCheckpoints(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Same(t, Ropsten, n)
	require.Len(t, table, 2)
	assert.Equal(t, params.RopstenGenesisHash, table[0].Hash)
	assert.Equal(t, uint64(4000000), table[1].Number)
	assert.Equal(t, uint64(1535000000), table[1].Timestamp)

	r, err := Default().ApplyCheckpoints(strings.NewReader(doc))
	require.NoError(t, err)
	c, ok := r.CheckpointLatest(Ropsten)
	require.True(t, ok)
	assert.Equal(t, uint64(4000000), c.Number)
}

func TestLoadCheckpointsErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  string
	}{
		{"unknown network", "network: kovan\ncheckpoints:\n  - number: 0\n    hash: \"0x01\"\n"},
		{"empty table", "network: mainnet\ncheckpoints: []\n"},
		{"short hash", "network: mainnet\ncheckpoints:\n  - number: 0\n    hash: \"0x01\"\n"},
		{"not hex", "network: mainnet\ncheckpoints:\n  - number: 0\n    hash: \"zz\"\n"},
		{"not yaml", "network: [mainnet"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadCheckpoints(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}

	_, err := Default().ApplyCheckpoints(strings.NewReader("network: mainnet\ncheckpoints:\n  - number: 2\n    hash: \"0x0000000000000000000000000000000000000000000000000000000000000001\"\n  - number: 1\n    hash: \"0x0000000000000000000000000000000000000000000000000000000000000002\"\n"))
	assert.Error(t, err, "descending table")
}
