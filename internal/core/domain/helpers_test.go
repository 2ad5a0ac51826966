package domain_test

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const (
	xpubA = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	xpubB = "xpub661MyMwAqRbcFW31YEwpkMuc5THy2PSt5bDMsktWQcFF8syAmRUapSCGu8ED9W6oDMSgv6Zz8idoc4a6mr8BDzTJY47LJhkJ8UB7WEGuduB"
	xpubC = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKfDBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"

	tpubA = "tpubD6NzVbkrYhZ4XgiXtGrdW5XDAPFCL9h7we1vwNCpn8tGbBcgfVYjXyhWo4E1xkh56hjod1RhGjxbaTLV3X4FyWuejifB9jusQ46QzG87VKp"
	tpubB = "tpubD6NzVbkrYhZ4XJDrzRvuxHEyQaPd1mwwdDofEJwekX18tAdsqeKfxss79AJzg1431FybXg5rfpTrJF4iAhyR7RubberdzEQXiRmXGADH2eA"

	pubkeyHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

var (
	signerA = domain.Signer{Fingerprint: "3442193e", Name: "alice", Xpub: xpubA}
	signerB = domain.Signer{Fingerprint: "bd16bee5", Name: "bob", Xpub: xpubB}
	signerC = domain.Signer{Fingerprint: "5c1bd648", Name: "carol", Xpub: xpubC}
)

func singlesigDescriptor(t *testing.T, signer domain.Signer) domain.WalletDescriptor {
	d, err := domain.NewWalletDescriptor(
		domain.NewBip43Format(domain.SinglesigSegwit0()),
		[]domain.Signer{signer},
		[]domain.SpendingCondition{domain.NewSpendingCondition(1, signer.Fingerprint)},
		domain.Mainnet,
	)
	require.NoError(t, err)
	return d
}

func multisigDescriptor(t *testing.T, threshold uint32, signers ...domain.Signer) domain.WalletDescriptor {
	fps := make([]string, 0, len(signers))
	for _, s := range signers {
		fps = append(fps, s.Fingerprint)
	}
	d, err := domain.NewWalletDescriptor(
		domain.DefaultWalletFormat(),
		signers,
		[]domain.SpendingCondition{domain.NewSpendingCondition(threshold, fps...)},
		domain.Mainnet,
	)
	require.NoError(t, err)
	return d
}

// testTxOut is either an output of the packet or, when used as input, the
// previous output being spent. A nil signer marks a foreign script.
type testTxOut struct {
	value  int64
	signer *domain.Signer
}

// newPacket builds a psbt whose outpoints are derived from seed, so that
// packets built with different seeds have different txids.
func newPacket(t *testing.T, seed byte, ins, outs []testTxOut) *psbt.Packet {
	if len(ins) <= 0 {
		ins = []testTxOut{{value: 1}}
	}

	outpoints := make([]*wire.OutPoint, 0, len(ins))
	sequences := make([]uint32, 0, len(ins))
	for i := range ins {
		var hash chainhash.Hash
		hash[0] = seed
		hash[1] = byte(i)
		outpoints = append(outpoints, wire.NewOutPoint(&hash, uint32(i)))
		sequences = append(sequences, wire.MaxTxInSequenceNum)
	}

	txOuts := make([]*wire.TxOut, 0, len(outs))
	for _, o := range outs {
		txOuts = append(txOuts, wire.NewTxOut(o.value, testScript()))
	}

	p, err := psbt.New(outpoints, txOuts, 2, 0, sequences)
	require.NoError(t, err)

	for i, in := range ins {
		p.Inputs[i].WitnessUtxo = wire.NewTxOut(in.value, testScript())
		if in.signer != nil {
			p.Inputs[i].Bip32Derivation = testDerivation(t, *in.signer)
		}
	}
	for i, out := range outs {
		if out.signer != nil {
			p.Outputs[i].Bip32Derivation = testDerivation(t, *out.signer)
		}
	}
	return p
}

func testScript() []byte {
	script := make([]byte, 22)
	script[1] = 0x14
	return script
}

func testDerivation(t *testing.T, signer domain.Signer) []*psbt.Bip32Derivation {
	pubkey, err := hex.DecodeString(pubkeyHex)
	require.NoError(t, err)
	fp, err := signer.MasterKeyFingerprint()
	require.NoError(t, err)
	return []*psbt.Bip32Derivation{{
		PubKey:               pubkey,
		MasterKeyFingerprint: fp,
		Bip32Path:            []uint32{0x80000054, 0x80000000, 0x80000000, 0, 0},
	}}
}
