package wallet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected DerivationPath
	}{
		{"absolute", "m/84'/0'/0'/0", DerivationPath{Hardened(84), Hardened(0), Hardened(0), 0}},
		{"h_marker", "m/86h/1h/0h", DerivationPath{Hardened(86), Hardened(1), Hardened(0)}},
		{"mixed_markers", "m/48'/1H/0h/2'", DerivationPath{Hardened(48), Hardened(1), Hardened(0), Hardened(2)}},
		{"cosigner_index", "m/45'/3", DerivationPath{Hardened(45), 3}},
		{"raw_hardened_index", "m/2147483732/0", DerivationPath{Hardened(84), 0}},
		{"relative", "84'/0'/0/0", DerivationPath{Hardened(84), Hardened(0), 0, 0}},
		{"single_relative", "7", DerivationPath{7}},
		{"spaces", " m / 84 ' /\t0h / 0 ", DerivationPath{Hardened(84), Hardened(0), 0}},
	}

	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.path)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.expected, path, tt.name)
	}
}

func TestFailingParseDerivationPath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectedErr error
	}{
		{"empty", "", ErrNullDerivationPath},
		{"blank", "  ", ErrNullDerivationPath},
		{"master_only", "m", ErrMalformedDerivationPath},
		{"trailing_slash", "m/84'/", ErrMalformedDerivationPath},
		{"leading_slash", "/84'/0'", ErrMalformedDerivationPath},
		{"double_slash", "m/48h//1h", ErrMalformedDerivationPath},
		{"negative", "m/-1'", ErrInvalidDerivationPath},
		{"not_a_number", "m/84'/x'", ErrInvalidDerivationPath},
		{"hex", "m/0x54'", ErrInvalidDerivationPath},
		{"hardened_overflow", "m/2147483648'", ErrInvalidDerivationPath},
		{"overflow", "m/4294967296", ErrInvalidDerivationPath},
	}

	for _, tt := range tests {
		_, err := ParseDerivationPath(tt.path)
		require.ErrorIs(t, err, tt.expectedErr, tt.name)
	}
}

func TestDerivationPathString(t *testing.T) {
	path := DerivationPath{Hardened(48), Hardened(0), Hardened(0), Hardened(2)}

	require.Equal(t, "m/48'/0'/0'/2'", path.String())
	require.Empty(t, DerivationPath{}.String())

	parsed, err := ParseDerivationPath(path.String())
	require.NoError(t, err)
	require.Equal(t, path, parsed)
}

func TestDerivationPathChild(t *testing.T) {
	base := DerivationPath{Hardened(45)}
	child := base.Child(7, 0, 1)

	require.Equal(t, DerivationPath{Hardened(45)}, base)
	require.Equal(t, "m/45'/7/0/1", child.String())
	require.True(t, IsHardened(child[0]))
	require.False(t, IsHardened(child[1]))
}
