package domain

import (
	"fmt"
	"strings"

	"github.com/mycitadel/citadel-wallet/pkg/wallet"
)

// Purpose is a BIP43 purpose field together with the derivation path format
// it defines. The zero value is not a valid purpose.
//
// Members are never renumbered or reinterpreted: new purposes are appended.
type Purpose uint8

const (
	// Bip44 is the account-based P2PKH derivation
	//
	// m / 44' / coin_type' / account'
	Bip44 Purpose = iota + 1
	// Bip45 is the cosigner-index-based multisig derivation
	//
	// m / 45' / cosigner_index
	Bip45
	// Bip48Nested is the account-based multisig derivation with sorted keys
	// and P2WSH-in-P2SH nested scripts
	//
	// m / 48' / coin_type' / account' / 1'
	Bip48Nested
	// Bip48Native is the account-based multisig derivation with sorted keys
	// and native P2WSH scripts
	//
	// m / 48' / coin_type' / account' / 2'
	Bip48Native
	// Bip49 is the account-based P2WPKH-in-P2SH derivation
	//
	// m / 49' / coin_type' / account'
	Bip49
	// Bip84 is the account-based native P2WPKH derivation
	//
	// m / 84' / coin_type' / account'
	Bip84
	// Bip86 is the account-based single key P2TR derivation
	//
	// m / 86' / coin_type' / account'
	Bip86
	// Bip87 is the account and descriptor based derivation for multisig
	// wallets
	//
	// m / 87' / coin_type' / account'
	Bip87
)

type purposeInfo struct {
	name       string
	alt        string
	template   string
	index      uint32
	scriptType uint32
	multisig   bool
}

var purposes = map[Purpose]purposeInfo{
	Bip44: {
		name: "bip44", alt: "m/44h", index: 44,
		template: "m/44'/coin'/account'",
	},
	Bip45: {
		name: "bip45", alt: "m/45h", index: 45, multisig: true,
		template: "m/45'/cosigner_index",
	},
	Bip48Nested: {
		name: "bip48-nested", alt: "m/48h//1h", index: 48, scriptType: 1, multisig: true,
		template: "m/48'/coin'/account'/script_type'",
	},
	Bip48Native: {
		name: "bip48-native", alt: "m/48h//2h", index: 48, scriptType: 2, multisig: true,
		template: "m/48'/coin'/account'/script_type'",
	},
	Bip49: {
		name: "bip49", alt: "m/49h", index: 49,
		template: "m/49'/coin'/account'",
	},
	Bip84: {
		name: "bip84", alt: "m/84h", index: 84,
		template: "m/84'/coin'/account'",
	},
	Bip86: {
		name: "bip86", alt: "m/86h", index: 86,
		template: "m/86'/coin'/account'",
	},
	Bip87: {
		name: "bip87", alt: "m/87h", index: 87, multisig: true,
		template: "m/87'/coin'/account'",
	},
}

// AllPurposes returns every known purpose in enumeration order.
func AllPurposes() []Purpose {
	return []Purpose{
		Bip44, Bip45, Bip48Nested, Bip48Native, Bip49, Bip84, Bip86, Bip87,
	}
}

// SinglesigPkh is the single-sig legacy P2PKH purpose.
func SinglesigPkh() Purpose { return Bip44 }

// SinglesigNested0 is the single-sig P2WPKH-in-P2SH purpose.
func SinglesigNested0() Purpose { return Bip49 }

// SinglesigSegwit0 is the single-sig native P2WPKH purpose.
func SinglesigSegwit0() Purpose { return Bip84 }

// SinglesigTaproot is the single-sig P2TR purpose.
func SinglesigTaproot() Purpose { return Bip86 }

// MultisigOrderedSh is the cosigner-index ordered P2SH multisig purpose.
func MultisigOrderedSh() Purpose { return Bip45 }

// MultisigNested0 is the P2WSH-in-P2SH multisig purpose.
func MultisigNested0() Purpose { return Bip48Nested }

// MultisigSegwit0 is the native P2WSH multisig purpose.
func MultisigSegwit0() Purpose { return Bip48Native }

// MultisigDescriptor is the descriptor based multisig purpose.
func MultisigDescriptor() Purpose { return Bip87 }

// ParsePurpose decodes either the canonical name (ie. "bip48-native") or the
// compact path form (ie. "m/48h//2h") of a purpose. Anything else results in
// ErrUnrecognizedPurpose, there's no fallback.
func ParsePurpose(str string) (Purpose, error) {
	s := strings.TrimSpace(str)
	for _, p := range AllPurposes() {
		info := purposes[p]
		if s == info.name || s == info.alt {
			return p, nil
		}
	}
	if strings.HasPrefix(s, "m/") {
		return PurposeFromAccountPath(s)
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnrecognizedPurpose, str)
}

// PurposeFromAccountPath returns the purpose whose account level path is
// the given one, ie. m/84'/0'/0' or m/48h/1h/0h/2h. The coin type must be
// 0' or 1', Bip45 paths are made of the purpose index only.
func PurposeFromAccountPath(str string) (Purpose, error) {
	path, err := wallet.ParseDerivationPath(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnrecognizedPurpose, err)
	}
	for _, p := range AllPurposes() {
		if p.matchAccountPath(path) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnrecognizedPurpose, str)
}

// IsValid returns whether p is one of the known purposes.
func (p Purpose) IsValid() bool {
	_, ok := purposes[p]
	return ok
}

// String returns the canonical name of the purpose.
func (p Purpose) String() string {
	if info, ok := purposes[p]; ok {
		return info.name
	}
	return fmt.Sprintf("purpose(%d)", uint8(p))
}

// Alt returns the compact path form of the purpose, ie. "m/84h".
func (p Purpose) Alt() string {
	return purposes[p].alt
}

// Template returns the documented derivation path template.
func (p Purpose) Template() string {
	return purposes[p].template
}

// Index returns the value of the BIP43 purpose field.
func (p Purpose) Index() uint32 {
	return purposes[p].index
}

// ScriptType returns the BIP48 script type (1 nested, 2 native). It is 0 for
// every other purpose.
func (p Purpose) ScriptType() uint32 {
	return purposes[p].scriptType
}

// IsMultisig returns whether the purpose describes a multi-sig policy.
func (p Purpose) IsMultisig() bool {
	return purposes[p].multisig
}

// AccountPath builds the hardened account level derivation path of the
// purpose for the given network and account. Bip45 has no coin nor account
// level, the returned m/45' is to be extended with the cosigner index.
func (p Purpose) AccountPath(net Network, account uint32) (wallet.DerivationPath, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedPurpose, uint8(p))
	}

	path := wallet.DerivationPath{wallet.Hardened(p.Index())}
	if p == Bip45 {
		return path, nil
	}
	path = path.Child(
		wallet.Hardened(net.CoinType()), wallet.Hardened(account),
	)
	if st := p.ScriptType(); st > 0 {
		path = path.Child(wallet.Hardened(st))
	}
	return path, nil
}

func (p Purpose) matchAccountPath(path wallet.DerivationPath) bool {
	expected := 3
	switch {
	case p == Bip45:
		expected = 1
	case p.ScriptType() > 0:
		expected = 4
	}
	if len(path) != expected || path[0] != wallet.Hardened(p.Index()) {
		return false
	}
	for _, index := range path {
		if !wallet.IsHardened(index) {
			return false
		}
	}
	if expected > 1 {
		coinType := path[1] - wallet.Hardened(0)
		if coinType != Mainnet.CoinType() && coinType != Testnet.CoinType() {
			return false
		}
	}
	return expected < 4 || path[3] == wallet.Hardened(p.ScriptType())
}

func (p Purpose) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedPurpose, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Purpose) UnmarshalText(text []byte) error {
	purpose, err := ParsePurpose(string(text))
	if err != nil {
		return err
	}
	*p = purpose
	return nil
}
