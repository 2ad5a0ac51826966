package domain

import "github.com/btcsuite/btcd/btcutil/psbt"

// WalletState is the summary derived from the history of a wallet.
type WalletState struct {
	Balance Sats
}

// DefaultWalletState is the state of a wallet with empty history.
func DefaultWalletState() WalletState {
	return WalletState{Balance: 0}
}

// StateReducer recomputes the state of a wallet from its descriptor and
// its chronological history.
type StateReducer interface {
	Reduce(descriptor WalletDescriptor, history []*psbt.Packet) (WalletState, error)
}

// StateReducerFunc adapts a plain function to the StateReducer interface.
type StateReducerFunc func(WalletDescriptor, []*psbt.Packet) (WalletState, error)

func (f StateReducerFunc) Reduce(
	descriptor WalletDescriptor, history []*psbt.Packet,
) (WalletState, error) {
	return f(descriptor, history)
}
