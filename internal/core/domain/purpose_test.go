package domain_test

import (
	"testing"

	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestPurposeFactories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		factory          func() domain.Purpose
		expectedPurpose  domain.Purpose
		expectedMultisig bool
		expectedTemplate string
	}{
		{"singlesig_pkh", domain.SinglesigPkh, domain.Bip44, false, "m/44'/coin'/account'"},
		{"singlesig_nested", domain.SinglesigNested0, domain.Bip49, false, "m/49'/coin'/account'"},
		{"singlesig_segwit", domain.SinglesigSegwit0, domain.Bip84, false, "m/84'/coin'/account'"},
		{"singlesig_taproot", domain.SinglesigTaproot, domain.Bip86, false, "m/86'/coin'/account'"},
		{"multisig_ordered_sh", domain.MultisigOrderedSh, domain.Bip45, true, "m/45'/cosigner_index"},
		{"multisig_nested", domain.MultisigNested0, domain.Bip48Nested, true, "m/48'/coin'/account'/script_type'"},
		{"multisig_segwit", domain.MultisigSegwit0, domain.Bip48Native, true, "m/48'/coin'/account'/script_type'"},
		{"multisig_descriptor", domain.MultisigDescriptor, domain.Bip87, true, "m/87'/coin'/account'"},
	}

	seen := make(map[domain.Purpose]string)
	for _, tt := range tests {
		p := tt.factory()
		require.Equal(t, tt.expectedPurpose, p, tt.name)
		require.True(t, p.IsValid(), tt.name)
		require.Equal(t, tt.expectedMultisig, p.IsMultisig(), tt.name)
		require.Equal(t, tt.expectedTemplate, p.Template(), tt.name)

		other, ok := seen[p]
		require.False(t, ok, "%s and %s return the same purpose", tt.name, other)
		seen[p] = tt.name
	}
	require.Len(t, seen, len(domain.AllPurposes()))
}

func TestPurposeStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		purpose       domain.Purpose
		expectedName  string
		expectedAlt   string
		expectedIndex uint32
	}{
		{domain.Bip44, "bip44", "m/44h", 44},
		{domain.Bip45, "bip45", "m/45h", 45},
		{domain.Bip48Nested, "bip48-nested", "m/48h//1h", 48},
		{domain.Bip48Native, "bip48-native", "m/48h//2h", 48},
		{domain.Bip49, "bip49", "m/49h", 49},
		{domain.Bip84, "bip84", "m/84h", 84},
		{domain.Bip86, "bip86", "m/86h", 86},
		{domain.Bip87, "bip87", "m/87h", 87},
	}

	require.Len(t, tests, len(domain.AllPurposes()))
	for _, tt := range tests {
		require.Equal(t, tt.expectedName, tt.purpose.String())
		require.Equal(t, tt.expectedAlt, tt.purpose.Alt())
		require.Equal(t, tt.expectedIndex, tt.purpose.Index())

		byName, err := domain.ParsePurpose(tt.expectedName)
		require.NoError(t, err)
		require.Equal(t, tt.purpose, byName)

		byAlt, err := domain.ParsePurpose(tt.expectedAlt)
		require.NoError(t, err)
		require.Equal(t, tt.purpose, byAlt)

		text, err := tt.purpose.MarshalText()
		require.NoError(t, err)
		var p domain.Purpose
		require.NoError(t, p.UnmarshalText(text))
		require.Equal(t, tt.purpose, p)
	}
}

func TestFailingParsePurpose(t *testing.T) {
	t.Parallel()

	for _, str := range []string{"", "bip32", "bip48", "BIP84", "m/84'", "m/0h"} {
		_, err := domain.ParsePurpose(str)
		require.ErrorIs(t, err, domain.ErrUnrecognizedPurpose, str)
	}

	require.False(t, domain.Purpose(0).IsValid())
	require.False(t, domain.Purpose(9).IsValid())
	_, err := domain.Purpose(0).MarshalText()
	require.ErrorIs(t, err, domain.ErrUnrecognizedPurpose)
}

func TestPurposeAccountPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		purpose      domain.Purpose
		network      domain.Network
		account      uint32
		expectedPath string
	}{
		{domain.Bip44, domain.Mainnet, 0, "m/44'/0'/0'"},
		{domain.Bip45, domain.Mainnet, 3, "m/45'"},
		{domain.Bip48Nested, domain.Testnet, 0, "m/48'/1'/0'/1'"},
		{domain.Bip48Native, domain.Mainnet, 1, "m/48'/0'/1'/2'"},
		{domain.Bip49, domain.Signet, 2, "m/49'/1'/2'"},
		{domain.Bip84, domain.Mainnet, 0, "m/84'/0'/0'"},
		{domain.Bip86, domain.Regtest, 0, "m/86'/1'/0'"},
		{domain.Bip87, domain.Mainnet, 5, "m/87'/0'/5'"},
	}

	for _, tt := range tests {
		path, err := tt.purpose.AccountPath(tt.network, tt.account)
		require.NoError(t, err)
		require.Equal(t, tt.expectedPath, path.String())
	}

	_, err := domain.Purpose(0).AccountPath(domain.Mainnet, 0)
	require.ErrorIs(t, err, domain.ErrUnrecognizedPurpose)
}

func TestParsePurposeFromAccountPath(t *testing.T) {
	t.Parallel()

	for _, p := range domain.AllPurposes() {
		for _, net := range []domain.Network{domain.Mainnet, domain.Testnet} {
			path, err := p.AccountPath(net, 0)
			require.NoError(t, err)

			parsed, err := domain.ParsePurpose(path.String())
			require.NoError(t, err, path.String())
			require.Equal(t, p, parsed, path.String())
		}
	}

	p, err := domain.ParsePurpose("m/48h/1h/0h/1h")
	require.NoError(t, err)
	require.Equal(t, domain.Bip48Nested, p)

	format, err := domain.ParseWalletFormat("m/86'/0'/0'")
	require.NoError(t, err)
	require.Equal(t, domain.NewBip43Format(domain.Bip86), format)

	for _, str := range []string{
		"m/84'/2'/0'", "m/84'/0'/0", "m/84'/0'/0'/0'", "m/48'/0'/0'/3'",
		"m/48'/0'/0'", "m/45'/0", "m/84'//0'",
	} {
		_, err := domain.PurposeFromAccountPath(str)
		require.ErrorIs(t, err, domain.ErrUnrecognizedPurpose, str)
	}
}
