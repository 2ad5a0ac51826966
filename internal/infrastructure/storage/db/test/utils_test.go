package db_test

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const (
	pubkeyHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	tpub      = "tpubD6NzVbkrYhZ4XgiXtGrdW5XDAPFCL9h7we1vwNCpn8tGbBcgfVYjXyhWo4E1xkh56hjod1RhGjxbaTLV3X4FyWuejifB9jusQ46QzG87VKp"
)

func makeRandomSigner() domain.Signer {
	return domain.Signer{
		Fingerprint: randomHex(4),
		Name:        randomHex(8),
		Xpub:        tpub,
	}
}

func makeRandomDescriptor(t *testing.T) domain.WalletDescriptor {
	signers := []domain.Signer{makeRandomSigner(), makeRandomSigner()}
	d, err := domain.NewWalletDescriptor(
		domain.DefaultWalletFormat(),
		signers,
		[]domain.SpendingCondition{
			domain.NewSpendingCondition(2, signers[0].Fingerprint, signers[1].Fingerprint),
			{
				Threshold: 1,
				Signers:   []string{signers[1].Fingerprint},
				Timelock:  domain.Timelock{Kind: domain.TimelockOlderBlocks, Value: 4320},
			},
		},
		domain.Regtest,
	)
	require.NoError(t, err)
	return d
}

// makeRandomPacket returns a psbt with one random input and one output
// of the given value, owned by the signer.
func makeRandomPacket(t *testing.T, value int64, signer domain.Signer) *psbt.Packet {
	var hash chainhash.Hash
	copy(hash[:], randomBytes(32))

	p, err := psbt.New(
		[]*wire.OutPoint{wire.NewOutPoint(&hash, 0)},
		[]*wire.TxOut{wire.NewTxOut(value, make([]byte, 22))},
		2, 0, []uint32{wire.MaxTxInSequenceNum},
	)
	require.NoError(t, err)

	pubkey, err := hex.DecodeString(pubkeyHex)
	require.NoError(t, err)
	fp, err := signer.MasterKeyFingerprint()
	require.NoError(t, err)

	p.Inputs[0].WitnessUtxo = wire.NewTxOut(value+1000, make([]byte, 22))
	p.Outputs[0].Bip32Derivation = []*psbt.Bip32Derivation{{
		PubKey:               pubkey,
		MasterKeyFingerprint: fp,
		Bip32Path:            []uint32{0x80000030, 0x80000001, 0x80000000, 0x80000002, 0, 0},
	}}
	return p
}

func makeRandomWallet(t *testing.T) *domain.Wallet {
	d := makeRandomDescriptor(t)
	signer := d.Signers()[0]

	w := domain.NewWallet(d)
	require.NoError(t, w.AppendHistory(
		makeRandomPacket(t, 10000, signer),
		makeRandomPacket(t, 20000, signer),
	))
	require.NoError(t, w.AddWip(makeRandomPacket(t, 5000, signer)))
	require.NoError(t, w.Recompute(domain.BalanceReducer{}))
	return w
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
