package blockchain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

var (
	testKey, _  = crypto.HexToECDSA("b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291")
	testAddress = common.HexToAddress("0x71562b71999873db5b286df957af199ec94617f7")
	testMiner   = common.HexToAddress("0xb2930b35844a230f00e51431acae96fe543a0347")
)

func testHeader(number uint64) *Header {
	h := NewHeader()
	h.ParentHash = common.HexToHash("0xb853f283c777f628e28be62a80850d98a5a5e9c4e86afb0e785f7a222ebf67f8")
	h.OmmersHash = types.EmptyUncleHash
	h.Beneficiary = testMiner
	h.StateRoot = common.HexToHash("0x24dc4e9f66f026b0569270e8ef95d34c275721ff6eecab029afe11c43249e046")
	h.TransactionsRoot = types.EmptyRootHash
	h.ReceiptsRoot = types.EmptyRootHash
	h.Difficulty = *uint256.NewInt(131072)
	h.Number = number
	h.GasLimit = 8000000
	h.GasUsed = 21000
	h.Timestamp = 1528143608 + number*15
	h.ExtraData = []byte("sing1")
	h.MixHash = common.HexToHash("0xbcefde2594b8b501c985c2f0f411c69baee727c4f90a74ef28b7f2b59a00f7c2")
	h.Nonce = 0x07ab2de40005d6f7
	if _, err := h.Identify(); err != nil {
		panic(err)
	}
	return h
}

func testTx(nonce uint64) *types.Transaction {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: big.NewInt(50000000000),
		Gas:      21000,
		To:       &testAddress,
		Value:    big.NewInt(int64(nonce) + 1),
	})
	signed, err := types.SignTx(tx, types.HomesteadSigner{}, testKey)
	if err != nil {
		panic(err)
	}
	return signed
}

func testTxs(n int) []*types.Transaction {
	txs := make([]*types.Transaction, n)
	for i := range txs {
		txs[i] = testTx(uint64(i))
	}
	return txs
}
