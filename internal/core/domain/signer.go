package domain

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const fingerprintLen = 4

// Signer is a cosigner of a wallet, identified by the fingerprint of its
// master key, and the account level extended public key it contributes to
// the wallet.
type Signer struct {
	Fingerprint string
	Name        string
	Xpub        string
}

// NewSigner validates the given fingerprint and extended public key against
// the network and returns a Signer.
func NewSigner(fingerprint, name, xpub string, net Network) (Signer, error) {
	s := Signer{
		Fingerprint: strings.ToLower(strings.TrimSpace(fingerprint)),
		Name:        strings.TrimSpace(name),
		Xpub:        strings.TrimSpace(xpub),
	}
	key, err := s.validate(net)
	if err != nil {
		return Signer{}, err
	}
	s.Xpub = key.String()
	return s, nil
}

// validate checks the fingerprint and that the xpub is a public key for net.
func (s Signer) validate(net Network) (*hdkeychain.ExtendedKey, error) {
	if _, err := parseFingerprint(s.Fingerprint); err != nil {
		return nil, err
	}

	key, err := hdkeychain.NewKeyFromString(s.Xpub)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignerXpub, err)
	}
	if key.IsPrivate() {
		return nil, ErrSignerXpubIsPrivate
	}
	if !key.IsForNet(net.Params()) {
		return nil, fmt.Errorf("%w: expected %s", ErrSignerWrongNetwork, net)
	}
	return key, nil
}

// MasterKeyFingerprint returns the fingerprint in the little endian uint32
// form used by PSBT BIP32 derivation records.
func (s Signer) MasterKeyFingerprint() (uint32, error) {
	b, err := parseFingerprint(s.Fingerprint)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// CompareSigners defines the total order of signers: by fingerprint, then
// xpub, then name.
func CompareSigners(a, b Signer) int {
	if c := strings.Compare(a.Fingerprint, b.Fingerprint); c != 0 {
		return c
	}
	if c := strings.Compare(a.Xpub, b.Xpub); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func (s Signer) String() string {
	if s.Name == "" {
		return s.Fingerprint
	}
	return fmt.Sprintf("%s[%s]", s.Name, s.Fingerprint)
}

func parseFingerprint(fingerprint string) ([]byte, error) {
	b, err := hex.DecodeString(fingerprint)
	if err != nil || len(b) != fingerprintLen {
		return nil, ErrInvalidSignerFingerprint
	}
	return b, nil
}

// SignerSet is an ordered set of unique signers. The order is canonical and
// carries no meaning other than making equality and hashing stable.
type SignerSet struct {
	signers []Signer
}

// NewSignerSet lowercases fingerprints, sorts the given signers and drops
// duplicates.
func NewSignerSet(signers ...Signer) SignerSet {
	sorted := make([]Signer, 0, len(signers))
	for _, s := range signers {
		s.Fingerprint = strings.ToLower(s.Fingerprint)
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return CompareSigners(sorted[i], sorted[j]) < 0
	})

	unique := make([]Signer, 0, len(sorted))
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		unique = append(unique, s)
	}
	return SignerSet{unique}
}

func (ss SignerSet) Len() int {
	return len(ss.signers)
}

// Signers returns a copy of the signers in canonical order.
func (ss SignerSet) Signers() []Signer {
	signers := make([]Signer, len(ss.signers))
	copy(signers, ss.signers)
	return signers
}

// Get returns the signer with the given fingerprint.
func (ss SignerSet) Get(fingerprint string) (Signer, bool) {
	fingerprint = strings.ToLower(fingerprint)
	for _, s := range ss.signers {
		if s.Fingerprint == fingerprint {
			return s, true
		}
	}
	return Signer{}, false
}

func (ss SignerSet) Contains(fingerprint string) bool {
	_, ok := ss.Get(fingerprint)
	return ok
}

func (ss SignerSet) Equal(other SignerSet) bool {
	if len(ss.signers) != len(other.signers) {
		return false
	}
	for i := range ss.signers {
		if ss.signers[i] != other.signers[i] {
			return false
		}
	}
	return true
}

// masterKeyFingerprints indexes the signers by their PSBT fingerprint.
// Signers with a malformed fingerprint are skipped.
func (ss SignerSet) masterKeyFingerprints() map[uint32]struct{} {
	fps := make(map[uint32]struct{}, len(ss.signers))
	for _, s := range ss.signers {
		fp, err := s.MasterKeyFingerprint()
		if err != nil {
			continue
		}
		fps[fp] = struct{}{}
	}
	return fps
}

func (ss SignerSet) validate(net Network) error {
	seen := make(map[string]struct{}, len(ss.signers))
	for _, s := range ss.signers {
		if _, err := s.validate(net); err != nil {
			return fmt.Errorf("signer %s: %w", s, err)
		}
		if _, ok := seen[s.Fingerprint]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatedSigner, s.Fingerprint)
		}
		seen[s.Fingerprint] = struct{}{}
	}
	return nil
}
