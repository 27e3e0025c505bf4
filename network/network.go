// Package network holds the per-network anchors a light client starts from:
// the genesis header and a table of trusted checkpoints.
package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var ErrUnknownNetwork = errors.New("unknown network")

type Network struct {
	Name    string
	ChainID uint64
}

func (n *Network) String() string {
	return n.Name
}

var (
	Mainnet = &Network{Name: "mainnet", ChainID: params.MainnetChainConfig.ChainID.Uint64()}
	Ropsten = &Network{Name: "ropsten", ChainID: params.RopstenChainConfig.ChainID.Uint64()}
	Rinkeby = &Network{Name: "rinkeby", ChainID: params.RinkebyChainConfig.ChainID.Uint64()}
)

var networks = []*Network{Mainnet, Ropsten, Rinkeby}

// Networks returns the supported networks.
func Networks() []*Network {
	return append([]*Network(nil), networks...)
}

// Lookup finds a network by name. "testnet" is accepted for ropsten.
func Lookup(name string) (*Network, error) {
	name = strings.ToLower(name)
	if name == "testnet" {
		name = Ropsten.Name
	}
	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownNetwork)
}
