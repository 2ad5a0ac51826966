package domain

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
)

// BalanceReducer computes the balance of a wallet by walking its history in
// chronological order. Outputs carrying a BIP32 derivation from one of the
// wallet signers are credited, inputs spending such outputs are debited.
// Any over/underflow aborts the computation.
type BalanceReducer struct{}

func (BalanceReducer) Reduce(
	descriptor WalletDescriptor, history []*psbt.Packet,
) (WalletState, error) {
	fingerprints := descriptor.signers.masterKeyFingerprints()

	var balance Sats
	for i, p := range history {
		if p == nil || p.UnsignedTx == nil {
			return WalletState{}, fmt.Errorf("history %d: %w", i, ErrNullPsbt)
		}

		// credit first so that change outputs are accounted before the
		// inputs funding them are debited.
		for j, out := range p.UnsignedTx.TxOut {
			if j >= len(p.Outputs) || !isOwnOutput(p.Outputs[j], fingerprints) {
				continue
			}
			value, err := SatsFromBtcutil(btcutil.Amount(out.Value))
			if err != nil {
				return WalletState{}, fmt.Errorf("history %d output %d: %w", i, j, err)
			}
			if balance, err = balance.Add(value); err != nil {
				return WalletState{}, fmt.Errorf("history %d output %d: %w", i, j, err)
			}
		}

		for j, in := range p.Inputs {
			if !isOwnInput(in, fingerprints) {
				continue
			}
			prevValue, ok := prevOutValue(p, j)
			if !ok {
				continue
			}
			value, err := SatsFromBtcutil(btcutil.Amount(prevValue))
			if err != nil {
				return WalletState{}, fmt.Errorf("history %d input %d: %w", i, j, err)
			}
			if balance, err = balance.Sub(value); err != nil {
				return WalletState{}, fmt.Errorf("history %d input %d: %w", i, j, err)
			}
		}
	}

	return WalletState{Balance: balance}, nil
}

func isOwnOutput(out psbt.POutput, fingerprints map[uint32]struct{}) bool {
	for _, d := range out.Bip32Derivation {
		if _, ok := fingerprints[d.MasterKeyFingerprint]; ok {
			return true
		}
	}
	for _, d := range out.TaprootBip32Derivation {
		if _, ok := fingerprints[d.MasterKeyFingerprint]; ok {
			return true
		}
	}
	return false
}

func isOwnInput(in psbt.PInput, fingerprints map[uint32]struct{}) bool {
	for _, d := range in.Bip32Derivation {
		if _, ok := fingerprints[d.MasterKeyFingerprint]; ok {
			return true
		}
	}
	for _, d := range in.TaprootBip32Derivation {
		if _, ok := fingerprints[d.MasterKeyFingerprint]; ok {
			return true
		}
	}
	return false
}

func prevOutValue(p *psbt.Packet, index int) (int64, bool) {
	in := p.Inputs[index]
	if in.WitnessUtxo != nil {
		return in.WitnessUtxo.Value, true
	}
	if in.NonWitnessUtxo != nil && index < len(p.UnsignedTx.TxIn) {
		prevIndex := p.UnsignedTx.TxIn[index].PreviousOutPoint.Index
		if int(prevIndex) < len(in.NonWitnessUtxo.TxOut) {
			return in.NonWitnessUtxo.TxOut[prevIndex].Value, true
		}
	}
	return 0, false
}
