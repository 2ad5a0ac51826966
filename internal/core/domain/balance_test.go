package domain_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/wire"
	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestBalanceReducer(t *testing.T) {
	t.Parallel()

	descriptor := singlesigDescriptor(t, signerA)
	reducer := domain.BalanceReducer{}

	receive := newPacket(t, 1,
		[]testTxOut{{value: 200000}},
		[]testTxOut{{value: 100000, signer: &signerA}, {value: 99000}},
	)
	spend := newPacket(t, 2,
		[]testTxOut{{value: 100000, signer: &signerA}},
		[]testTxOut{{value: 30000}, {value: 69000, signer: &signerA}},
	)

	t.Run("empty history", func(t *testing.T) {
		state, err := reducer.Reduce(descriptor, nil)
		require.NoError(t, err)
		require.Equal(t, domain.DefaultWalletState(), state)
	})

	t.Run("receive and spend", func(t *testing.T) {
		state, err := reducer.Reduce(descriptor, []*psbt.Packet{receive})
		require.NoError(t, err)
		require.Equal(t, domain.Sats(100000), state.Balance)

		state, err = reducer.Reduce(descriptor, []*psbt.Packet{receive, spend})
		require.NoError(t, err)
		require.Equal(t, domain.Sats(69000), state.Balance)
	})

	t.Run("foreign signers", func(t *testing.T) {
		state, err := reducer.Reduce(
			singlesigDescriptor(t, signerB), []*psbt.Packet{receive, spend},
		)
		require.NoError(t, err)
		require.Zero(t, state.Balance)
	})

	t.Run("multisig", func(t *testing.T) {
		toB := newPacket(t, 3,
			[]testTxOut{{value: 50000}},
			[]testTxOut{{value: 40000, signer: &signerB}},
		)
		state, err := reducer.Reduce(
			multisigDescriptor(t, 2, signerA, signerB),
			[]*psbt.Packet{receive, toB},
		)
		require.NoError(t, err)
		require.Equal(t, domain.Sats(140000), state.Balance)
	})

	t.Run("taproot and non witness utxo", func(t *testing.T) {
		fp, err := signerA.MasterKeyFingerprint()
		require.NoError(t, err)

		tr := newPacket(t, 4,
			[]testTxOut{{value: 10000}},
			[]testTxOut{{value: 5000}},
		)
		tr.Outputs[0].TaprootBip32Derivation = []*psbt.TaprootBip32Derivation{{
			XOnlyPubKey:          make([]byte, 32),
			MasterKeyFingerprint: fp,
			Bip32Path:            []uint32{0x80000056, 0x80000000, 0x80000000, 0, 0},
		}}

		legacy := newPacket(t, 5,
			[]testTxOut{{value: 5000, signer: &signerA}},
			[]testTxOut{{value: 4000}},
		)
		prevTx := wire.NewMsgTx(2)
		prevTx.AddTxOut(wire.NewTxOut(5000, testScript()))
		legacy.Inputs[0].WitnessUtxo = nil
		legacy.Inputs[0].NonWitnessUtxo = prevTx

		state, err := reducer.Reduce(descriptor, []*psbt.Packet{tr})
		require.NoError(t, err)
		require.Equal(t, domain.Sats(5000), state.Balance)

		state, err = reducer.Reduce(descriptor, []*psbt.Packet{tr, legacy})
		require.NoError(t, err)
		require.Zero(t, state.Balance)
	})

	t.Run("underflow", func(t *testing.T) {
		_, err := reducer.Reduce(descriptor, []*psbt.Packet{spend})
		require.ErrorIs(t, err, domain.ErrAmountUnderflow)
		require.ErrorIs(t, err, domain.ErrArithmetic)
	})

	t.Run("null psbt", func(t *testing.T) {
		_, err := reducer.Reduce(descriptor, []*psbt.Packet{receive, nil})
		require.ErrorIs(t, err, domain.ErrNullPsbt)
	})
}
