package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is a BIP32 path as a list of child indexes, hardened ones
// included in the upper half of the uint32 range.
type DerivationPath []uint32

// Hardened returns the hardened form of the given child index.
func Hardened(index uint32) uint32 {
	return hdkeychain.HardenedKeyStart + index
}

// IsHardened returns whether the given child index is in the hardened range.
func IsHardened(index uint32) bool {
	return index >= hdkeychain.HardenedKeyStart
}

// ParseDerivationPath parses an absolute (m/...) or relative path. Hardened
// indexes are marked with either ' or h, ie. m/84'/0'/0' or m/84h/0h/0h.
func ParseDerivationPath(str string) (DerivationPath, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, ErrNullDerivationPath
	}

	elems := strings.Split(str, "/")
	if strings.TrimSpace(elems[0]) == "m" {
		elems = elems[1:]
	}
	if len(elems) <= 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(elems))
	for _, elem := range elems {
		index, err := parseChildIndex(strings.TrimSpace(elem))
		if err != nil {
			return nil, err
		}
		path = append(path, index)
	}
	return path, nil
}

func parseChildIndex(elem string) (uint32, error) {
	if elem == "" {
		return 0, ErrMalformedDerivationPath
	}

	var offset uint32
	if last := elem[len(elem)-1]; last == '\'' || last == 'h' || last == 'H' {
		offset = hdkeychain.HardenedKeyStart
		elem = strings.TrimSpace(elem[:len(elem)-1])
	}

	index, err := strconv.ParseUint(elem, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad index '%s'", ErrInvalidDerivationPath, elem)
	}
	if offset > 0 && IsHardened(uint32(index)) {
		return 0, fmt.Errorf(
			"%w: hardened index %d out of range", ErrInvalidDerivationPath, index,
		)
	}
	return offset + uint32(index), nil
}

// Child returns a new path made of the current one extended with the given
// child indexes. The receiver is never modified.
func (path DerivationPath) Child(indexes ...uint32) DerivationPath {
	child := make(DerivationPath, 0, len(path)+len(indexes))
	child = append(child, path...)
	return append(child, indexes...)
}

// String renders the path in absolute form with the ' hardened marker.
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("m")
	for _, index := range path {
		sb.WriteString("/")
		if IsHardened(index) {
			sb.WriteString(strconv.FormatUint(uint64(index-hdkeychain.HardenedKeyStart), 10))
			sb.WriteString("'")
			continue
		}
		sb.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return sb.String()
}
