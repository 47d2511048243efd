package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmountSeparatorAmbiguity(t *testing.T) {
	cases := []struct {
		raw       string
		canonical string
		value     float64
	}{
		{"1.234,56", "1234.56", 1234.56},
		{"1,234.56", "1234.56", 1234.56},
		{"123,45", "123.45", 123.45},
		{"118,00", "118.00", 118.0},
		{"42.00", "42.00", 42.0},
	}

	for _, c := range cases {
		canonical, value, ok := NormalizeAmount(c.raw)
		assert.True(t, ok, "expected %q to normalize", c.raw)
		assert.Equal(t, c.canonical, canonical)
		assert.Equal(t, c.value, value)
	}
}

func TestNormalizeAmountIdempotent(t *testing.T) {
	canonical, _, ok := NormalizeAmount("42.00")
	assert.True(t, ok)

	again, _, ok := NormalizeAmount(canonical)
	assert.True(t, ok)
	assert.Equal(t, canonical, again)
}

func TestNormalizeAmountTrailingSeparator(t *testing.T) {
	canonical, _, ok := NormalizeAmount("1.250.")
	assert.True(t, ok)
	assert.Equal(t, "1.250", canonical)

	canonical, _, ok = NormalizeAmount("118,")
	assert.True(t, ok)
	assert.Equal(t, "118", canonical)
}

func TestNormalizeAmountCollapsesThousandsGroups(t *testing.T) {
	canonical, value, ok := NormalizeAmount("1.2.345")
	assert.True(t, ok)
	assert.Equal(t, "12.345", canonical)
	assert.Equal(t, 12.345, value)
}

func TestNormalizeAmountRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", ",", ".", "abc", "..,,"} {
		_, _, ok := NormalizeAmount(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}
