package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henridf/lightblock/blockchain"
	"github.com/henridf/lightblock/network"
	"github.com/henridf/lightblock/store"
)

func chain(t *testing.T, n int) []*blockchain.Block {
	t.Helper()
	var blocks []*blockchain.Block
	for i := 0; i < n; i++ {
		h := blockchain.NewHeader()
		h.OmmersHash = types.EmptyUncleHash
		h.TransactionsRoot = types.EmptyRootHash
		h.ReceiptsRoot = types.EmptyRootHash
		h.Difficulty = *uint256.NewInt(131072)
		h.Number = uint64(100 + i)
		h.GasLimit = 8000000
		h.Timestamp = uint64(1528143608 + 15*i)
		if i > 0 {
			h.ParentHash = blocks[i-1].Hash()
		}
		_, err := h.Identify()
		require.NoError(t, err)
		blocks = append(blocks, blockchain.NewBlockFull(h, nil, nil))
	}
	return blocks
}

func writeBlocks(t *testing.T, blocks []*blockchain.Block) string {
	t.Helper()
	var buf bytes.Buffer
	for _, b := range blocks {
		enc, err := b.Encode(blockchain.RlpNetwork)
		require.NoError(t, err)
		buf.Write(enc)
	}
	path := filepath.Join(t.TempDir(), "blocks.rlp")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestBlockReader(t *testing.T) {
	blocks := chain(t, 3)
	files, err := openBlockFiles([]string{writeBlocks(t, blocks[:2]), writeBlocks(t, blocks[2:])})
	require.NoError(t, err)
	defer files.Close()

	r := newBlockReader(files)
	for _, want := range blocks {
		b, err := r.next()
		require.NoError(t, err)
		assert.Equal(t, want.Hash(), b.Hash())
		assert.True(t, b.TransactionsAreValid())
	}
	_, err = r.next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 3, r.count)
	assert.Greater(t, r.cr.n, 0)
}

func TestOpenBlockFilesClose(t *testing.T) {
	path := writeBlocks(t, chain(t, 1))
	files, err := openBlockFiles([]string{path, path})
	require.NoError(t, err)
	require.Len(t, files.files, 2)
	fh := files.files[0]

	require.NoError(t, files.Close())
	_, err = fh.Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NoError(t, files.Close(), "second close is a no-op")

	_, err = openBlockFiles([]string{path, filepath.Join(t.TempDir(), "missing.rlp")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBlockReaderGarbage(t *testing.T) {
	r := newBlockReader(bytes.NewReader([]byte{0xc2, 0x01, 0x02}))
	_, err := r.next()
	assert.Error(t, err)
}

func TestRunArchives(t *testing.T) {
	blocks := chain(t, 2)
	cfg := config{Network: "mainnet", DB: t.TempDir()}
	cfg.Args.Files = []string{writeBlocks(t, blocks)}
	require.NoError(t, run(cfg, zerolog.Nop()))

	st, err := store.Open(cfg.DB, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()
	for _, want := range blocks {
		got, err := st.GetByNumber(want.Number())
		require.NoError(t, err)
		assert.Equal(t, want.Hash(), got.Hash())
	}
}

func TestRunUnknownNetwork(t *testing.T) {
	cfg := config{Network: "kovan"}
	cfg.Args.Files = []string{writeBlocks(t, chain(t, 1))}
	assert.Error(t, run(cfg, zerolog.Nop()))
}

func TestCheckerCountsInconsistentHeaders(t *testing.T) {
	genesis, err := network.GenesisHeader(network.Mainnet)
	require.NoError(t, err)
	c := &checker{
		registry:    network.Default(),
		network:     network.Mainnet,
		genesis:     genesis,
		consistency: true,
		log:         zerolog.Nop(),
	}

	// Difficulty below the mainnet genesis floor.
	blocks := chain(t, 3)
	for _, b := range blocks {
		c.check(b)
		c.advance(b)
	}
	assert.Equal(t, 2, c.inconsistent)
	assert.Equal(t, 0, c.badRoots)
	assert.True(t, blocks[0].Released())
	assert.False(t, blocks[2].Released())

	unlinked := chain(t, 1)[0]
	c.check(unlinked)
	assert.Equal(t, 2, c.inconsistent, "only checked against its parent")
}
