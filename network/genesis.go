package network

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/henridf/lightblock/blockchain"
)

const emptyListHash = "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347"
const emptyTrieHash = "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421"

// genesisRecord holds block 0 of a network as reported by
// eth_getBlockByNumber("0x0"). Fields not listed are zero.
type genesisRecord struct {
	hash       string
	stateRoot  string
	difficulty uint64
	gasLimit   uint64
	timestamp  uint64
	extraData  string
	nonce      uint64
}

var genesisRecords = map[*Network]genesisRecord{
	Mainnet: {
		hash:       "0xd4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3",
		stateRoot:  "0xd7f8974fb5ac78d9ac099b9ad5018bedc2ce0a72dad1827a1709da30580f0544",
		difficulty: 0x400000000,
		gasLimit:   0x1388,
		timestamp:  0x0,
		extraData:  "0x11bbe8db4e347b4e8c937c1c8370e4b5ed33adb3db69cbdb7a38e1e50b1b82fa",
		nonce:      0x0000000000000042,
	},
	Ropsten: {
		hash:       "0x41941023680923e0fe4d74a34bdac8141f2540e3ae90623718e47d66d1ca4a2d",
		stateRoot:  "0x217b0bbcfb72e2d57e28f33cb361b9983513177755dc3f33ce3e7022ed62b77b",
		difficulty: 0x100000,
		gasLimit:   0x1000000,
		timestamp:  0x0,
		extraData:  "0x3535353535353535353535353535353535353535353535353535353535353535",
		nonce:      0x0000000000000042,
	},
	// Rinkeby's clique extraData also carries the signer list and seal, which
	// does not fit in 32 bytes; only the vanity prefix is kept. The hash is the
	// network's, not a re-encoding of this record.
	Rinkeby: {
		hash:       "0x6341fd3daf94b748c72ced5a5b26028f2474f5f00d824504e4fa37a75767e177",
		stateRoot:  "0x53580584816f617295ea26c0e17641e0120cab2f0a8ffb53a866fd53aa8e8c2d",
		difficulty: 0x1,
		gasLimit:   0x47b760,
		timestamp:  0x58ee40ba,
		extraData:  "0x52657370656374206d7920617574686f7269746168207e452e436172746d616e",
		nonce:      0x0000000000000000,
	},
}

func (g genesisRecord) header() *blockchain.Header {
	h := blockchain.NewHeaderMinimal(common.HexToHash(g.hash), 0, g.timestamp)
	h.OmmersHash = common.HexToHash(emptyListHash)
	h.StateRoot = common.HexToHash(g.stateRoot)
	h.TransactionsRoot = common.HexToHash(emptyTrieHash)
	h.ReceiptsRoot = common.HexToHash(emptyTrieHash)
	h.Difficulty = *uint256.NewInt(g.difficulty)
	h.GasLimit = g.gasLimit
	h.ExtraData = hexutil.MustDecode(g.extraData)
	h.Nonce = g.nonce
	return h
}
