package normalizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"romanian with thousands", "1.234,56", "1234.56"},
		{"romanian without thousands", "1234,56", "1234.56"},
		{"plain decimal", "1234.56", "1234.56"},
		{"explicit plus sign", "+1234,56", "1234.56"},
		{"negative", "-50.00", "-50"},
		{"euro symbol", "€1.00", "1"},
		{"currency suffix", "50,00 RON", "50"},
		{"multiple thousand groups", "1.234.567,89", "1234567.89"},
		{"integer", "250", "250"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestParseAmount_RoundTrip(t *testing.T) {
	// Every rendering of the same value parses to the same decimal.
	want := decimal.RequireFromString("1234.56")
	for _, input := range []string{"1.234,56", "1234,56", "1234.56", "+1234,56"} {
		got, err := ParseAmount(input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, got.Equal(want), "input %q parsed to %s", input, got)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "-", "+", "abc", "RON", "..,,"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmount(input)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "KAUFLAND BUCURESTI", CleanDescription("  KAUFLAND   BUCURESTI \t"))
	assert.Equal(t, "", CleanDescription("   "))
}
