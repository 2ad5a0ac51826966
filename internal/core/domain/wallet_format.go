package domain

import (
	"fmt"
	"strings"
)

// DescriptorVariants is the set of script variants a descriptor based wallet
// generates scripts for.
type DescriptorVariants uint8

const (
	VariantBare DescriptorVariants = 1 << iota
	VariantHashed
	VariantNested
	VariantSegwit
	VariantTaproot

	allVariants = VariantBare | VariantHashed | VariantNested |
		VariantSegwit | VariantTaproot
)

var variantNames = []struct {
	variant DescriptorVariants
	name    string
}{
	{VariantBare, "bare"},
	{VariantHashed, "hashed"},
	{VariantNested, "nested"},
	{VariantSegwit, "segwit"},
	{VariantTaproot, "taproot"},
}

// ParseDescriptorVariants decodes a "|" separated list of variant names, ie.
// "segwit|taproot".
func ParseDescriptorVariants(str string) (DescriptorVariants, error) {
	var variants DescriptorVariants
	for _, elem := range strings.Split(str, "|") {
		elem = strings.TrimSpace(elem)
		found := false
		for _, v := range variantNames {
			if v.name == elem {
				variants |= v.variant
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown descriptor variant '%s'", ErrUnrecognizedFormat, elem)
		}
	}
	return variants, nil
}

// IsValid returns whether the set is not empty and made of known variants
// only.
func (v DescriptorVariants) IsValid() bool {
	return v != 0 && v&^allVariants == 0
}

// Has returns whether all the given variants are in the set.
func (v DescriptorVariants) Has(variants DescriptorVariants) bool {
	return v&variants == variants
}

func (v DescriptorVariants) String() string {
	names := make([]string, 0, len(variantNames))
	for _, vn := range variantNames {
		if v.Has(vn.variant) {
			names = append(names, vn.name)
		}
	}
	return strings.Join(names, "|")
}

// FormatKind discriminates the two kinds of WalletFormat.
type FormatKind uint8

const (
	// FormatDescriptor is a wallet defined through a general descriptor
	// syntax variant.
	FormatDescriptor FormatKind = iota + 1
	// FormatBip43 is a wallet rooted in a BIP43 purpose derivation.
	FormatBip43
)

const descriptorFormatPrefix = "descriptor:"

// WalletFormat is a tagged union being either a set of descriptor variants or
// a BIP43 purpose. Build it with NewDescriptorFormat, NewBip43Format or
// DefaultWalletFormat: the zero value is no valid format.
type WalletFormat struct {
	kind     FormatKind
	variants DescriptorVariants
	purpose  Purpose
}

// NewDescriptorFormat returns a descriptor based format.
func NewDescriptorFormat(variants DescriptorVariants) WalletFormat {
	return WalletFormat{kind: FormatDescriptor, variants: variants}
}

// NewBip43Format returns a purpose rooted format.
func NewBip43Format(purpose Purpose) WalletFormat {
	return WalletFormat{kind: FormatBip43, purpose: purpose}
}

// DefaultWalletFormat is the sorted-key native segwit multisig format.
func DefaultWalletFormat() WalletFormat {
	return NewBip43Format(MultisigSegwit0())
}

// ParseWalletFormat decodes either a purpose ("bip84", "m/84h") or a
// descriptor format ("descriptor:segwit|taproot").
func ParseWalletFormat(str string) (WalletFormat, error) {
	s := strings.TrimSpace(str)
	if strings.HasPrefix(s, descriptorFormatPrefix) {
		variants, err := ParseDescriptorVariants(
			strings.TrimPrefix(s, descriptorFormatPrefix),
		)
		if err != nil {
			return WalletFormat{}, err
		}
		return NewDescriptorFormat(variants), nil
	}

	purpose, err := ParsePurpose(s)
	if err != nil {
		return WalletFormat{}, err
	}
	return NewBip43Format(purpose), nil
}

func (f WalletFormat) Kind() FormatKind {
	return f.kind
}

// Purpose returns the purpose of a Bip43 format.
func (f WalletFormat) Purpose() (Purpose, bool) {
	if f.kind != FormatBip43 {
		return 0, false
	}
	return f.purpose, true
}

// Variants returns the variants of a descriptor format.
func (f WalletFormat) Variants() (DescriptorVariants, bool) {
	if f.kind != FormatDescriptor {
		return 0, false
	}
	return f.variants, true
}

// IsValid returns whether the format is exactly one of the two kinds with a
// valid payload.
func (f WalletFormat) IsValid() bool {
	switch f.kind {
	case FormatDescriptor:
		return f.variants.IsValid() && f.purpose == 0
	case FormatBip43:
		return f.purpose.IsValid() && f.variants == 0
	default:
		return false
	}
}

// signersRange returns the min and max number of signers accepted by the
// format. A max of 0 means unbounded.
func (f WalletFormat) signersRange() (int, int) {
	if f.kind == FormatBip43 {
		if f.purpose.IsMultisig() {
			return 2, 0
		}
		return 1, 1
	}
	return 1, 0
}

func (f WalletFormat) String() string {
	switch f.kind {
	case FormatDescriptor:
		return descriptorFormatPrefix + f.variants.String()
	case FormatBip43:
		return f.purpose.String()
	default:
		return "unknown"
	}
}

func (f WalletFormat) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, ErrInvalidFormat
	}
	return []byte(f.String()), nil
}

func (f *WalletFormat) UnmarshalText(text []byte) error {
	format, err := ParseWalletFormat(string(text))
	if err != nil {
		return err
	}
	*f = format
	return nil
}
