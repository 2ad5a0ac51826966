package domain_test

import (
	"testing"

	"github.com/mycitadel/citadel-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestDefaultWalletFormat(t *testing.T) {
	t.Parallel()

	f := domain.DefaultWalletFormat()
	require.Equal(t, domain.NewBip43Format(domain.Bip48Native), f)
	require.Equal(t, domain.FormatBip43, f.Kind())
	require.True(t, f.IsValid())

	purpose, ok := f.Purpose()
	require.True(t, ok)
	require.Equal(t, domain.Bip48Native, purpose)

	_, ok = f.Variants()
	require.False(t, ok)
}

func TestParseWalletFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		str            string
		expectedFormat domain.WalletFormat
		expectedString string
	}{
		{"bip84", domain.NewBip43Format(domain.Bip84), "bip84"},
		{"m/48h//1h", domain.NewBip43Format(domain.Bip48Nested), "bip48-nested"},
		{
			"descriptor:segwit",
			domain.NewDescriptorFormat(domain.VariantSegwit),
			"descriptor:segwit",
		},
		{
			"descriptor:taproot|segwit",
			domain.NewDescriptorFormat(domain.VariantSegwit | domain.VariantTaproot),
			"descriptor:segwit|taproot",
		},
	}

	for _, tt := range tests {
		f, err := domain.ParseWalletFormat(tt.str)
		require.NoError(t, err)
		require.Equal(t, tt.expectedFormat, f)
		require.Equal(t, tt.expectedString, f.String())
		require.True(t, f.IsValid())

		text, err := f.MarshalText()
		require.NoError(t, err)
		var parsed domain.WalletFormat
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, f, parsed)
	}
}

func TestFailingParseWalletFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		str         string
		expectedErr error
	}{
		{"", domain.ErrUnrecognizedPurpose},
		{"bip32", domain.ErrUnrecognizedPurpose},
		{"descriptor:", domain.ErrUnrecognizedFormat},
		{"descriptor:segwit|legacy", domain.ErrUnrecognizedFormat},
	}

	for _, tt := range tests {
		_, err := domain.ParseWalletFormat(tt.str)
		require.ErrorIs(t, err, tt.expectedErr, tt.str)
	}
}

func TestWalletFormatIsValid(t *testing.T) {
	t.Parallel()

	require.False(t, domain.WalletFormat{}.IsValid())
	require.False(t, domain.NewBip43Format(0).IsValid())
	require.False(t, domain.NewDescriptorFormat(0).IsValid())
	require.False(t, domain.NewDescriptorFormat(1<<7).IsValid())

	_, err := domain.WalletFormat{}.MarshalText()
	require.ErrorIs(t, err, domain.ErrInvalidFormat)
}

func TestDescriptorVariants(t *testing.T) {
	t.Parallel()

	v, err := domain.ParseDescriptorVariants("bare|hashed|nested|segwit|taproot")
	require.NoError(t, err)
	require.True(t, v.IsValid())
	require.True(t, v.Has(domain.VariantNested|domain.VariantTaproot))
	require.Equal(t, "bare|hashed|nested|segwit|taproot", v.String())

	v = domain.VariantSegwit
	require.False(t, v.Has(domain.VariantTaproot))
}
