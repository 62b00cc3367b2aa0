package moneyx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"5", 500},
		{"12.50", 1250},
		{"12,50", 1250},
		{"0.01", 1},
		{"-3", -300},
		{"-1,99", -199},
		{"007", 700},
		{"1234567.89", 123456789},
		{"92233720368547758.07", 9223372036854775807},
		{"-92233720368547758,08", -9223372036854775808},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCents(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCents_Rejects(t *testing.T) {
	for _, in := range []string{"", " 5", "5 ", "1.5", "1.505", "1,5", "abc", "+5", "--1", "1.", ".50", "1e3", "1.000,00", "5€"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseCents(in)
			require.ErrorIs(t, err, ErrInvalidAmount)
			assert.False(t, ValidAmount(in))
		})
	}
}

func TestParseCents_RejectsOverflow(t *testing.T) {
	for _, in := range []string{
		"92233720368547758.08",
		"-92233720368547758.09",
		"99999999999999999999",
		"184467440737095516,16",
	} {
		t.Run(in, func(t *testing.T) {
			assert.True(t, ValidAmount(in))
			got, err := ParseCents(in)
			require.ErrorIs(t, err, ErrInvalidAmount)
			assert.Zero(t, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "25", FormatCents(2500))
	assert.Equal(t, "-1.5", FormatCents(-150))
	assert.Equal(t, "19.99", FormatCents(1999))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0", FormatCents(0))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+5", FormatSigned(500))
	assert.Equal(t, "-1.5", FormatSigned(-150))
	assert.Equal(t, "0", FormatSigned(0))
}
