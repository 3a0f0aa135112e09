package batch

import (
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNano(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"Whole", "1", "1000000000"},
		{"Fraction", "1.5", "1500000000"},
		{"Smallest unit", "0.000000001", "1"},
		{"Rounds half up", "0.0000000015", "2"},
		{"Rounds down", "0.0000000014", "1"},
		{"Large", "123456789.123456789", "123456789123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToNano(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"Six decimals", "2.345", 6, "2345000"},
		{"Floors excess precision", "1.9999999", 6, "1999999"},
		{"Zero decimals", "7.9", 0, "7"},
		{"Eighteen decimals", "0.5", 18, "500000000000000000"},
		{"Below smallest unit", "0.0000001", 6, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToUnits_DecimalsOutOfRange(t *testing.T) {
	one := decimal.NewFromInt(1)
	for _, d := range []int{-1, MaxTokenDecimals + 1, (1 << 32) + 6} {
		_, err := ToUnits(one, d)
		assert.ErrorIs(t, err, ErrInvalidInput, "decimals=%d", d)
	}

	got, err := ToUnits(one, MaxTokenDecimals)
	require.NoError(t, err)
	assert.Equal(t, "1"+strings.Repeat("0", MaxTokenDecimals), got.String())
}

func TestFitsCoins(t *testing.T) {
	limit := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), MaxCoinsBits), big.NewInt(1))
	assert.True(t, FitsCoins(big.NewInt(0)))
	assert.True(t, FitsCoins(limit))
	assert.False(t, FitsCoins(new(big.Int).Add(limit, big.NewInt(1))))
	assert.False(t, FitsCoins(big.NewInt(-1)))
}

func TestCheckAmountRange(t *testing.T) {
	tests := []struct {
		amount string
		ok     bool
	}{
		{"1.5", true},
		{"1e36", true},
		{"1e37", false},
		{"0.1234567890123456789012345678901234567890123456789012345678901234", true},
		{"0.12345678901234567890123456789012345678901234567890123456789012345", false},
		{"1e5000000", false},
		{"1e-5000000", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := checkAmountRange(decimal.RequireFromString(tt.amount))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	for n := 1; n <= 13; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		groups := Partition(items, 4)

		assert.Len(t, groups, (n+3)/4, "n=%d", n)
		assert.Len(t, groups[len(groups)-1], ((n-1)%4)+1, "n=%d", n)

		var flat []int
		for _, g := range groups {
			assert.LessOrEqual(t, len(g), 4)
			flat = append(flat, g...)
		}
		assert.Equal(t, items, flat, "n=%d", n)
	}
}

func TestPartition_Empty(t *testing.T) {
	assert.Empty(t, Partition([]string{}, 4))
	assert.Len(t, Partition([]string{"a", "b"}, 0), 2)
}
