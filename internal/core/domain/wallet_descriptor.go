package domain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// WalletDescriptor identifies the spending policy of a wallet: how keys are
// derived (format), who signs (signers), under which conditions and on which
// network. It is a value: change it by replacing it as a whole.
type WalletDescriptor struct {
	format     WalletFormat
	signers    SignerSet
	conditions []SpendingCondition
	network    Network
}

// NewWalletDescriptor builds a descriptor and validates it: every condition
// must reference signers of the set and the number of signers must fit the
// format.
func NewWalletDescriptor(
	format WalletFormat, signers []Signer,
	conditions []SpendingCondition, network Network,
) (WalletDescriptor, error) {
	d := NewWalletDescriptorUnchecked(format, signers, conditions, network)
	if err := d.Validate(); err != nil {
		return WalletDescriptor{}, err
	}
	return d, nil
}

// NewWalletDescriptorUnchecked builds a descriptor without validating it.
// It's meant for restoring descriptors already validated once, ie. from
// storage.
func NewWalletDescriptorUnchecked(
	format WalletFormat, signers []Signer,
	conditions []SpendingCondition, network Network,
) WalletDescriptor {
	conds := make([]SpendingCondition, 0, len(conditions))
	for _, c := range conditions {
		conds = append(conds, c.clone())
	}
	return WalletDescriptor{
		format:     format,
		signers:    NewSignerSet(signers...),
		conditions: conds,
		network:    network,
	}
}

// DefaultWalletDescriptor returns the descriptor of an unconfigured wallet:
// default format and network, no signers, no conditions. Check IsDefault
// before using a descriptor for derivation.
func DefaultWalletDescriptor() WalletDescriptor {
	return WalletDescriptor{
		format:     DefaultWalletFormat(),
		signers:    NewSignerSet(),
		conditions: []SpendingCondition{},
		network:    DefaultNetwork(),
	}
}

func (d WalletDescriptor) Format() WalletFormat {
	return d.format
}

func (d WalletDescriptor) Network() Network {
	return d.network
}

func (d WalletDescriptor) SignerSet() SignerSet {
	return d.signers
}

// Signers returns a copy of the signers in canonical order.
func (d WalletDescriptor) Signers() []Signer {
	return d.signers.Signers()
}

// Conditions returns a copy of the spending conditions.
func (d WalletDescriptor) Conditions() []SpendingCondition {
	conds := make([]SpendingCondition, 0, len(d.conditions))
	for _, c := range d.conditions {
		conds = append(conds, c.clone())
	}
	return conds
}

// IsDefault returns whether d is the unconfigured sentinel descriptor.
func (d WalletDescriptor) IsDefault() bool {
	return d.Equal(DefaultWalletDescriptor())
}

// Validate checks the cross-field consistency of the descriptor.
func (d WalletDescriptor) Validate() error {
	if !d.format.IsValid() {
		return ErrInvalidFormat
	}
	if !d.network.IsValid() {
		return fmt.Errorf(
			"%w: %w: %s", ErrInvalidDescriptor, ErrUnrecognizedNetwork, d.network,
		)
	}
	if err := d.signers.validate(d.network); err != nil {
		return err
	}

	min, max := d.format.signersRange()
	if d.signers.Len() < min {
		return fmt.Errorf(
			"%w: %s requires at least %d, got %d",
			ErrNotEnoughSigners, d.format, min, d.signers.Len(),
		)
	}
	if max > 0 && d.signers.Len() > max {
		return fmt.Errorf(
			"%w: %s accepts at most %d, got %d",
			ErrTooManySigners, d.format, max, d.signers.Len(),
		)
	}

	if len(d.conditions) <= 0 {
		return ErrNullConditions
	}
	for i, c := range d.conditions {
		if err := c.validate(d.signers); err != nil {
			return fmt.Errorf("condition %d: %w", i, err)
		}
	}
	return nil
}

// Equal returns whether the two descriptors have pairwise equal format,
// signers, conditions and network.
func (d WalletDescriptor) Equal(o WalletDescriptor) bool {
	if d.format != o.format || d.network != o.network ||
		!d.signers.Equal(o.signers) || len(d.conditions) != len(o.conditions) {
		return false
	}
	for i := range d.conditions {
		if !d.conditions[i].Equal(o.conditions[i]) {
			return false
		}
	}
	return true
}

// Hash returns the double sha256 of the canonical serialization of the
// descriptor. Equal descriptors have equal hashes.
func (d WalletDescriptor) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(d.serialize())
}

func (d WalletDescriptor) serialize() []byte {
	var buf bytes.Buffer

	// Writes to a bytes.Buffer never fail.
	buf.WriteByte(byte(d.format.kind))
	buf.WriteByte(byte(d.format.variants))
	buf.WriteByte(byte(d.format.purpose))
	buf.WriteByte(byte(d.network))

	_ = wire.WriteVarInt(&buf, 0, uint64(d.signers.Len()))
	for _, s := range d.signers.signers {
		_ = wire.WriteVarString(&buf, 0, s.Fingerprint)
		_ = wire.WriteVarString(&buf, 0, s.Name)
		_ = wire.WriteVarString(&buf, 0, s.Xpub)
	}

	_ = wire.WriteVarInt(&buf, 0, uint64(len(d.conditions)))
	for _, c := range d.conditions {
		_ = wire.WriteVarInt(&buf, 0, uint64(c.Threshold))
		_ = wire.WriteVarInt(&buf, 0, uint64(len(c.Signers)))
		for _, fp := range c.Signers {
			_ = wire.WriteVarString(&buf, 0, fp)
		}
		buf.WriteByte(byte(c.Timelock.Kind))
		_ = wire.WriteVarInt(&buf, 0, uint64(c.Timelock.Value))
	}

	return buf.Bytes()
}

func (d WalletDescriptor) String() string {
	signers := make([]string, 0, d.signers.Len())
	for _, s := range d.signers.signers {
		signers = append(signers, s.String())
	}
	conds := make([]string, 0, len(d.conditions))
	for _, c := range d.conditions {
		conds = append(conds, c.String())
	}
	return fmt.Sprintf(
		"%s@%s signers=[%s] conditions=[%s]",
		d.format, d.network, strings.Join(signers, " "), strings.Join(conds, " "),
	)
}
