package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Native-unit amounts (ETH) are decimal.Decimal; smallest-unit amounts (wei)
// are *big.Int. The two representations are never compared or added directly,
// only through the conversions below.
const (
	// NativeDecimals is the wei exponent of the native coin.
	NativeDecimals = 18

	// GweiDecimals is the wei exponent of one gwei.
	GweiDecimals = 9
)

// WeiToDecimal converts a wei value to a native-unit decimal amount.
func WeiToDecimal(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -NativeDecimals)
}

// DecimalToWei converts a native-unit amount to wei. Amounts with more than
// 18 fractional digits cannot be represented on chain and are rejected.
func DecimalToWei(amount decimal.Decimal) (*big.Int, error) {
	shifted := amount.Shift(NativeDecimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s has sub-wei precision", amount.String())
	}
	return shifted.BigInt(), nil
}

// GweiToWei converts a decimal gwei amount (as entered for gas prices) to wei.
func GweiToWei(gwei decimal.Decimal) (*big.Int, error) {
	shifted := gwei.Shift(GweiDecimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("gas price %s gwei has sub-wei precision", gwei.String())
	}
	return shifted.BigInt(), nil
}

// WeiToGwei converts a wei value to gwei for display.
func WeiToGwei(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -GweiDecimals)
}

// ParseDecimalAmount parses a user-supplied native-unit amount string.
func ParseDecimalAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal amount %q: %w", s, err)
	}
	return d, nil
}

// ParseWei parses an integer smallest-unit string (gas limit/price overrides).
func ParseWei(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid integer amount %q", s)
	}
	return v, nil
}

// TokenToDecimal converts a token balance in its smallest unit to a decimal
// using the token's own exponent.
func TokenToDecimal(raw *big.Int, tokenDecimals int32) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -tokenDecimals)
}
