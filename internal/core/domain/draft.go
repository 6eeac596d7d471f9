package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TransactionDraft is the mutable working state of an in-progress send.
// Recipient and Amount are user input; GasLimit/GasPrice are optional
// smallest-unit integer strings overriding the estimated values.
type TransactionDraft struct {
	Recipient string
	Amount    string
	GasLimit  string
	GasPrice  string
	Data      []byte
	Token     *Token
}

// HasGasOverride reports whether the user supplied custom gas settings.
func (d TransactionDraft) HasGasOverride() bool {
	return d.GasLimit != "" || d.GasPrice != ""
}

// FeeQuote is the estimated execution cost for a draft at one point in time.
// Cost is always GasLimit × GasPrice at computation time; CostNative is the
// same value in native units. A quote is never persisted.
type FeeQuote struct {
	GasLimit   uint64
	GasPrice   *big.Int
	Cost       *big.Int
	CostNative decimal.Decimal
	Overridden bool
}

// NewFeeQuote derives the cost fields from gas limit and price.
func NewFeeQuote(gasLimit uint64, gasPrice *big.Int, overridden bool) *FeeQuote {
	cost := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)
	return &FeeQuote{
		GasLimit:   gasLimit,
		GasPrice:   new(big.Int).Set(gasPrice),
		Cost:       cost,
		CostNative: WeiToDecimal(cost),
		Overridden: overridden,
	}
}
