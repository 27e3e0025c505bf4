package network

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, tt := range []struct {
		name string
		want *Network
	}{
		{"mainnet", Mainnet},
		{"Ropsten", Ropsten},
		{"testnet", Ropsten},
		{"rinkeby", Rinkeby},
	} {
		got, err := Lookup(tt.name)
		require.NoError(t, err)
		assert.Same(t, tt.want, got)
	}

	_, err := Lookup("goerli")
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
}

func TestChainIDs(t *testing.T) {
	assert.Equal(t, uint64(1), Mainnet.ChainID)
	assert.Equal(t, uint64(3), Ropsten.ChainID)
	assert.Equal(t, uint64(4), Rinkeby.ChainID)
	assert.Len(t, Networks(), 3)
	assert.Equal(t, "mainnet", Mainnet.String())
}

func TestGenesisHeader(t *testing.T) {
	for _, tt := range []struct {
		network    *Network
		hash       common.Hash
		difficulty uint64
	}{
		{Mainnet, params.MainnetGenesisHash, 0x400000000},
		{Ropsten, params.RopstenGenesisHash, 0x100000},
		{Rinkeby, params.RinkebyGenesisHash, 1},
	} {
		t.Run(tt.network.Name, func(t *testing.T) {
			h, err := GenesisHeader(tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.hash, h.Hash())
			assert.Equal(t, uint64(0), h.Number)
			assert.Equal(t, tt.difficulty, h.Difficulty.Uint64())
			assert.LessOrEqual(t, len(h.ExtraData), 32)

			b, err := GenesisBlock(tt.network)
			require.NoError(t, err)
			assert.Equal(t, h.Hash(), b.Hash())
		})
	}
}

func TestGenesisHeaderEncodesToNetworkHash(t *testing.T) {
	for _, n := range []*Network{Mainnet, Ropsten} {
		h, err := GenesisHeader(n)
		require.NoError(t, err)
		want := h.Hash()
		got, err := h.Identify()
		require.NoError(t, err)
		assert.Equal(t, want, got, n.Name)
	}
}

func TestGenesisHeaderIsCopy(t *testing.T) {
	a, err := GenesisHeader(Mainnet)
	require.NoError(t, err)
	a.ExtraData[0] = 0
	a.GasLimit = 1
	a.Release()

	b, err := GenesisHeader(Mainnet)
	require.NoError(t, err)
	assert.False(t, b.Released())
	assert.Equal(t, byte(0x11), b.ExtraData[0])
	assert.Equal(t, uint64(0x1388), b.GasLimit)
	assert.Equal(t, params.MainnetGenesisHash, b.Hash())
}

func TestGenesisUnknownNetwork(t *testing.T) {
	_, err := GenesisHeader(&Network{Name: "kovan", ChainID: 42})
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
	_, err = GenesisBlock(&Network{Name: "kovan", ChainID: 42})
	assert.True(t, errors.Is(err, ErrUnknownNetwork))
}
