package main

import (
	"fmt"
	"strings"

	"github.com/mycitadel/citadel-wallet/internal/config"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var descriptorFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "format",
		Usage: "wallet format, either a purpose (ie. bip84, bip48-native, m/84h/0h/0h) or descriptor:<variants> (ie. descriptor:segwit|taproot)",
	},
	&cli.StringFlag{
		Name:  "network",
		Usage: "the network of the wallet: bitcoin, testnet, signet or regtest",
	},
	&cli.StringSliceFlag{
		Name:  "signer",
		Usage: "a wallet signer in the form fingerprint:name:xpub, repeat the flag for every signer",
	},
	&cli.UintFlag{
		Name:  "threshold",
		Usage: "number of signatures required to spend, 0 means all signers",
		Value: 0,
	},
}

// parseDescriptor builds the descriptor given through descriptorFlags,
// falling back to the configured format and network.
func parseDescriptor(ctx *cli.Context) (domain.WalletDescriptor, error) {
	format := config.GetDefaultFormat()
	if str := ctx.String("format"); str != "" {
		f, err := domain.ParseWalletFormat(str)
		if err != nil {
			return domain.WalletDescriptor{}, err
		}
		format = f
	}

	net := config.GetNetwork()
	if str := ctx.String("network"); str != "" {
		n, err := domain.ParseNetwork(str)
		if err != nil {
			return domain.WalletDescriptor{}, err
		}
		net = n
	}

	return buildDescriptor(
		format, net, ctx.StringSlice("signer"), uint32(ctx.Uint("threshold")),
	)
}

func buildDescriptor(
	format domain.WalletFormat, net domain.Network,
	signerArgs []string, threshold uint32,
) (domain.WalletDescriptor, error) {
	signers := make([]domain.Signer, 0, len(signerArgs))
	fingerprints := make([]string, 0, len(signerArgs))
	for _, arg := range signerArgs {
		signer, err := parseSigner(arg, net)
		if err != nil {
			return domain.WalletDescriptor{}, err
		}
		signers = append(signers, signer)
		fingerprints = append(fingerprints, signer.Fingerprint)
	}

	conditions := []domain.SpendingCondition{
		domain.NewSpendingCondition(threshold, fingerprints...),
	}
	return domain.NewWalletDescriptor(format, signers, conditions, net)
}

// parseSigner parses a signer in the form fingerprint:name:xpub. The name
// may contain colons.
func parseSigner(arg string, net domain.Network) (domain.Signer, error) {
	first := strings.Index(arg, ":")
	last := strings.LastIndex(arg, ":")
	if first < 0 || first == last {
		return domain.Signer{}, fmt.Errorf(
			"invalid signer '%s', must be in the form fingerprint:name:xpub", arg,
		)
	}
	return domain.NewSigner(arg[:first], arg[first+1:last], arg[last+1:], net)
}
