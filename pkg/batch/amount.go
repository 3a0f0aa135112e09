package batch

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToNano converts a TON amount into nanoTON, rounding half away from zero.
func ToNano(amount decimal.Decimal) *big.Int {
	return roundUnits(amount, NativeDecimals)
}

func roundUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Round(0).BigInt()
}

// ToUnits converts a Jetton amount into its smallest units: floor(amount * 10^decimals).
// decimals outside [0, MaxTokenDecimals] is ErrInvalidInput.
func ToUnits(amount decimal.Decimal, decimals int) (*big.Int, error) {
	if decimals < 0 || decimals > MaxTokenDecimals {
		return nil, fmt.Errorf("%w: token decimals must be within [0, %d], got %d", ErrInvalidInput, MaxTokenDecimals, decimals)
	}
	return amount.Shift(int32(decimals)).Floor().BigInt(), nil
}

// FitsCoins reports whether units can be stored as a Coins value.
func FitsCoins(units *big.Int) bool {
	return units.Sign() >= 0 && units.BitLen() <= MaxCoinsBits
}

// checkAmountRange 在做任何大数运算 (包括 String) 之前拒绝数量级离谱的金额，如 1e5000000
func checkAmountRange(amount decimal.Decimal) error {
	if amount.Exponent() < -MaxAmountScale {
		return fmt.Errorf("%w: amount has more than %d fractional digits", ErrInvalidInput, MaxAmountScale)
	}
	// 系数位数 + 指数 = 整数部分位数
	if intDigits := int64(amount.NumDigits()) + int64(amount.Exponent()); intDigits > MaxAmountIntDigits {
		return fmt.Errorf("%w: amount has %d integer digits, at most %d allowed", ErrInvalidInput, intDigits, MaxAmountIntDigits)
	}
	return nil
}

// Partition splits items into consecutive groups of at most size elements, keeping order.
func Partition[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	groups := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		groups = append(groups, items[start:end:end])
	}
	return groups
}
