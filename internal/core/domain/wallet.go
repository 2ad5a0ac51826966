package domain

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Wallet binds a descriptor to the history of transactions made with it and
// to those still in progress. The state is derived from the history and is
// written only by Recompute.
//
// Wallet does no locking, concurrent access must be serialized by the owner,
// ie. through WalletRepository.UpdateWallet.
type Wallet struct {
	descriptor WalletDescriptor
	state      WalletState
	history    []*psbt.Packet
	wip        []*psbt.Packet
}

// NewWallet returns a wallet for the given descriptor with default state and
// empty history and wip.
func NewWallet(descriptor WalletDescriptor) *Wallet {
	return &Wallet{
		descriptor: descriptor,
		state:      DefaultWalletState(),
		history:    make([]*psbt.Packet, 0),
		wip:        make([]*psbt.Packet, 0),
	}
}

// RestoreWallet rebuilds a wallet from its persisted parts.
func RestoreWallet(
	descriptor WalletDescriptor, state WalletState,
	history, wip []*psbt.Packet,
) (*Wallet, error) {
	w := NewWallet(descriptor)
	w.state = state
	if err := w.AppendHistory(history...); err != nil {
		return nil, err
	}
	for _, p := range wip {
		if err := w.AddWip(p); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// AsDescriptor returns the descriptor of the wallet without copying its
// signers and conditions. Use SetDescriptor to change it.
func (w *Wallet) AsDescriptor() WalletDescriptor {
	return w.descriptor
}

// ToDescriptor returns a copy of the descriptor.
func (w *Wallet) ToDescriptor() WalletDescriptor {
	d := w.descriptor
	return NewWalletDescriptorUnchecked(d.format, d.Signers(), d.conditions, d.network)
}

// SetDescriptor replaces the descriptor and, in the same step, resets the
// state and drops history and wip: they refer to keys that might not belong
// to the wallet anymore.
func (w *Wallet) SetDescriptor(descriptor WalletDescriptor) {
	w.state = DefaultWalletState()
	w.history = make([]*psbt.Packet, 0)
	w.wip = make([]*psbt.Packet, 0)
	w.descriptor = descriptor
}

func (w *Wallet) State() WalletState {
	return w.state
}

// History returns the chronological list of transactions of the wallet.
// Packets are shared with the wallet and must not be modified.
func (w *Wallet) History() []*psbt.Packet {
	history := make([]*psbt.Packet, len(w.history))
	copy(history, w.history)
	return history
}

// Wip returns the transactions in progress. Packets are shared with the
// wallet and must not be modified.
func (w *Wallet) Wip() []*psbt.Packet {
	wip := make([]*psbt.Packet, len(w.wip))
	copy(wip, w.wip)
	return wip
}

// AppendHistory adds the given transactions at the end of the history. The
// state is not updated, call Recompute afterwards.
func (w *Wallet) AppendHistory(packets ...*psbt.Packet) error {
	clones := make([]*psbt.Packet, 0, len(packets))
	for _, p := range packets {
		clone, err := clonePacket(p)
		if err != nil {
			return err
		}
		clones = append(clones, clone)
	}
	w.history = append(w.history, clones...)
	return nil
}

// AddWip adds a transaction to the list of those in progress.
func (w *Wallet) AddWip(packet *psbt.Packet) error {
	clone, err := clonePacket(packet)
	if err != nil {
		return err
	}
	w.wip = append(w.wip, clone)
	return nil
}

// ConfirmWip moves the pending transaction with the given unsigned txid to
// the history. The state is not updated, call Recompute afterwards.
func (w *Wallet) ConfirmWip(txid chainhash.Hash) error {
	i, err := w.wipIndex(txid)
	if err != nil {
		return err
	}
	packet := w.wip[i]
	w.wip = append(w.wip[:i:i], w.wip[i+1:]...)
	w.history = append(w.history, packet)
	return nil
}

// DiscardWip drops the pending transaction with the given unsigned txid.
func (w *Wallet) DiscardWip(txid chainhash.Hash) error {
	i, err := w.wipIndex(txid)
	if err != nil {
		return err
	}
	w.wip = append(w.wip[:i:i], w.wip[i+1:]...)
	return nil
}

// Recompute replaces the state with the one computed by the reducer over the
// history. If the reducer fails the state is left untouched.
func (w *Wallet) Recompute(reducer StateReducer) error {
	state, err := reducer.Reduce(w.descriptor, w.history)
	if err != nil {
		return err
	}
	w.state = state
	return nil
}

// Equal returns whether the two wallets have equal descriptor, state,
// history and wip.
func (w *Wallet) Equal(o *Wallet) bool {
	if w == nil || o == nil {
		return w == o
	}
	return w.descriptor.Equal(o.descriptor) &&
		w.state == o.state &&
		packetsEqual(w.history, o.history) &&
		packetsEqual(w.wip, o.wip)
}

func (w *Wallet) wipIndex(txid chainhash.Hash) (int, error) {
	for i, p := range w.wip {
		if p.UnsignedTx.TxHash() == txid {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrWipNotFound, txid)
}

// PacketTxid returns the id of the unsigned transaction of the packet.
func PacketTxid(p *psbt.Packet) chainhash.Hash {
	return p.UnsignedTx.TxHash()
}

func clonePacket(p *psbt.Packet) (*psbt.Packet, error) {
	if p == nil || p.UnsignedTx == nil {
		return nil, ErrNullPsbt
	}
	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize psbt: %w", err)
	}
	return psbt.NewFromRawBytes(&buf, false)
}

func packetsEqual(a, b []*psbt.Packet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		var bufA, bufB bytes.Buffer
		if err := a[i].Serialize(&bufA); err != nil {
			return false
		}
		if err := b[i].Serialize(&bufB); err != nil {
			return false
		}
		if !bytes.Equal(bufA.Bytes(), bufB.Bytes()) {
			return false
		}
	}
	return true
}
