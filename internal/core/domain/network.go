package domain

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network is the public bitcoin network a wallet operates on. It affects the
// coin type of derivation paths and the version bytes of extended keys.
type Network uint8

const (
	Mainnet Network = iota + 1
	Testnet
	Signet
	Regtest
)

// DefaultNetwork is the network of unconfigured wallets. Testnet keeps a
// sentinel descriptor from ever pointing at real funds.
func DefaultNetwork() Network {
	return Testnet
}

var networkNames = map[Network]string{
	Mainnet: "bitcoin",
	Testnet: "testnet",
	Signet:  "signet",
	Regtest: "regtest",
}

// ParseNetwork decodes a network name. "mainnet" is accepted as an alias of
// "bitcoin".
func ParseNetwork(str string) (Network, error) {
	name := strings.ToLower(strings.TrimSpace(str))
	if name == "mainnet" {
		return Mainnet, nil
	}
	for net, n := range networkNames {
		if n == name {
			return net, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnrecognizedNetwork, str)
}

// IsValid returns whether n is one of the known networks.
func (n Network) IsValid() bool {
	_, ok := networkNames[n]
	return ok
}

func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(%d)", uint8(n))
}

// Params returns the btcd chain parameters of the network.
func (n Network) Params() *chaincfg.Params {
	switch n {
	case Mainnet:
		return &chaincfg.MainNetParams
	case Signet:
		return &chaincfg.SigNetParams
	case Regtest:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.TestNet3Params
	}
}

// CoinType returns the BIP44 coin type used in the coin' level of derivation
// paths: 0 for mainnet, 1 for every test network.
func (n Network) CoinType() uint32 {
	return n.Params().HDCoinType
}

func (n Network) MarshalText() ([]byte, error) {
	if !n.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedNetwork, uint8(n))
	}
	return []byte(n.String()), nil
}

func (n *Network) UnmarshalText(text []byte) error {
	net, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = net
	return nil
}
