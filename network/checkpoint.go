package network

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/henridf/lightblock/blockchain"
)

// Checkpoint is a trusted block a client may sync from without the headers
// before it.
type Checkpoint struct {
	Number    uint64
	Hash      common.Hash
	Timestamp uint64
}

// Header returns a minimal header for the checkpoint block.
func (c Checkpoint) Header() *blockchain.Header {
	return blockchain.NewHeaderMinimal(c.Hash, c.Number, c.Timestamp)
}

// Tables are ascending by number and start at genesis.
var checkpointTables = map[*Network][]Checkpoint{
	Mainnet: {
		{0, common.HexToHash("d4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3"), 0},
	},
	Ropsten: {
		{0, common.HexToHash("41941023680923e0fe4d74a34bdac8141f2540e3ae90623718e47d66d1ca4a2d"), 0},
		{3500000, common.HexToHash("afeb3a16e527470f325a0d152db7779c90490788fb2485d4e87d4eda41e93574"), 1529827364}, // Jun-24-2018 08:02:44 UTC
	},
	Rinkeby: {
		{0, common.HexToHash("6341fd3daf94b748c72ced5a5b26028f2474f5f00d824504e4fa37a75767e177"), 0x58ee40ba},
		{2500000, common.HexToHash("40ecdd747a7a2c39eed10991af78f3d294c3aee778cd171550042d84d6cb3b7a"), 1529570086}, // Jun-21-2018 08:34:46 UTC
	},
}

func latest(table []Checkpoint) (Checkpoint, bool) {
	if len(table) == 0 {
		return Checkpoint{}, false
	}
	return table[len(table)-1], true
}

func byNumber(table []Checkpoint, number uint64) (Checkpoint, bool) {
	for i := len(table); i > 0; i-- {
		if table[i-1].Number <= number {
			return table[i-1], true
		}
	}
	return Checkpoint{}, false
}

func byTimestamp(table []Checkpoint, timestamp uint64) (Checkpoint, bool) {
	for i := len(table); i > 0; i-- {
		if table[i-1].Timestamp <= timestamp {
			return table[i-1], true
		}
	}
	return Checkpoint{}, false
}
