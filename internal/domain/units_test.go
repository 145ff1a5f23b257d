package domain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad test literal %s", s)
	return v
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{
			name:     "initial supply literal",
			value:    "1000000",
			decimals: 18,
			want:     "1000000000000000000000000",
		},
		{
			name:     "cap literal",
			value:    "2000000",
			decimals: 18,
			want:     "2000000000000000000000000",
		},
		{
			name:     "fractional value",
			value:    "1.5",
			decimals: 18,
			want:     "1500000000000000000",
		},
		{
			name:     "smallest unit",
			value:    "0.000000000000000001",
			decimals: 18,
			want:     "1",
		},
		{
			name:     "trailing zeros beyond precision are ignored",
			value:    "1.50000000000000000000",
			decimals: 18,
			want:     "1500000000000000000",
		},
		{
			name:     "leading dot",
			value:    ".25",
			decimals: 2,
			want:     "25",
		},
		{
			name:     "zero decimals",
			value:    "42",
			decimals: 0,
			want:     "42",
		},
		{
			name:     "zero",
			value:    "0",
			decimals: 18,
			want:     "0",
		},
		{
			name:     "negative",
			value:    "-3",
			decimals: 6,
			wantErr:  true,
		},
		{
			name:     "negative zero",
			value:    "-0",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "explicit plus sign",
			value:    "+3",
			decimals: 6,
			want:     "3000000",
		},
		{
			name:     "value beyond float64 precision stays exact",
			value:    "123456789012345678901234567890",
			decimals: 18,
			want:     "123456789012345678901234567890000000000000000000",
		},
		{
			name:     "too many fractional digits",
			value:    "0.0000000000000000001",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "empty",
			value:    "",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "lone dot",
			value:    ".",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "exponent notation",
			value:    "1e6",
			decimals: 18,
			wantErr:  true,
		},
		{
			name:     "two dots",
			value:    "1.2.3",
			decimals: 18,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUnits(tt.value, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidAmount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, mustBig(t, tt.want).Cmp(got), "got %s", got)
		})
	}
}

func TestParseUnits_MatchesExactPowerOfTen(t *testing.T) {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	for _, literal := range []string{"1", "7", "1000000", "2000000", "999999999"} {
		got, err := ParseUnits(literal, 18)
		require.NoError(t, err)

		want := new(big.Int).Mul(mustBig(t, literal), scale)
		assert.Equal(t, 0, want.Cmp(got), "literal %s", literal)
	}
}

func TestParseUnits_CapIsTwiceInitialSupply(t *testing.T) {
	initialSupply, err := ParseUnits("1000000", 18)
	require.NoError(t, err)
	capValue, err := ParseUnits("2000000", 18)
	require.NoError(t, err)

	doubled := new(big.Int).Mul(initialSupply, big.NewInt(2))
	assert.Equal(t, 0, doubled.Cmp(capValue))
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals uint8
		want     string
	}{
		{"1000000000000000000000000", 18, "1000000"},
		{"1500000000000000000", 18, "1.5"},
		{"1", 18, "0.000000000000000001"},
		{"0", 18, "0"},
		{"-3000000", 6, "-3"},
		{"42", 0, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUnits(mustBig(t, tt.amount), tt.decimals))
		})
	}

	assert.Equal(t, "0", FormatUnits(nil, 18))
}
