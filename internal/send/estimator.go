// Package send implements the transaction send flow: fee estimation, draft
// validation, the confirmation gate, and submission. A Flow ties them
// together for one send session.
package send

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/chain"
)

// ErrEstimateFailed marks estimation errors (simulation revert, unreachable
// fee data). A draft in this state never reaches confirmation.
var ErrEstimateFailed = errors.New("gas estimation failed")

// DefaultGasPrice is the fallback when the node reports no fee data: 20 gwei.
var DefaultGasPrice = new(big.Int).Mul(big.NewInt(20), big.NewInt(1_000_000_000))

// Estimator produces fee quotes for drafts. It has no state beyond the
// provider handle; quoting is idempotent and must be re-run on every material
// draft change.
type Estimator struct {
	provider chain.Provider
	log      *slog.Logger
}

func NewEstimator(provider chain.Provider, log *slog.Logger) *Estimator {
	if log == nil {
		log = slog.Default()
	}
	return &Estimator{provider: provider, log: log}
}

// Quote simulates the draft and computes gasLimit × gasPrice. User-supplied
// gas overrides in the draft are authoritative: the cost is recomputed from
// them, never taken from the oracle values they replace.
func (e *Estimator) Quote(ctx context.Context, from string, draft domain.TransactionDraft) (*domain.FeeQuote, error) {
	if !domain.ValidAddress(draft.Recipient) {
		return nil, fmt.Errorf("%w: recipient is not a valid address", ErrEstimateFailed)
	}

	value := big.NewInt(0)
	if draft.Amount != "" {
		amount, err := domain.ParseDecimalAmount(draft.Amount)
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("%w: invalid amount %q", ErrEstimateFailed, draft.Amount)
		}
		value, err = domain.DecimalToWei(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
		}
	}

	gasLimit, err := e.provider.EstimateGas(ctx, chain.TxRequest{
		From:  from,
		To:    draft.Recipient,
		Value: value,
		Data:  draft.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
	}

	fee, err := e.provider.FeeData(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateFailed, err)
	}
	gasPrice := fee.GasPrice
	if gasPrice == nil || gasPrice.Sign() == 0 {
		e.log.Debug("No fee data from provider, using default gas price",
			"default_wei", DefaultGasPrice)
		gasPrice = DefaultGasPrice
	}

	if !draft.HasGasOverride() {
		return domain.NewFeeQuote(gasLimit, gasPrice, false), nil
	}
	return applyOverrides(gasLimit, gasPrice, draft)
}

// applyOverrides replaces estimated gas values with the draft's custom ones
// and recomputes the cost.
func applyOverrides(gasLimit uint64, gasPrice *big.Int, draft domain.TransactionDraft) (*domain.FeeQuote, error) {
	overridden := false

	if draft.GasLimit != "" {
		v, err := domain.ParseWei(draft.GasLimit)
		if err != nil || !v.IsUint64() || v.Uint64() == 0 {
			return nil, fmt.Errorf("%w: invalid gas limit override %q", ErrEstimateFailed, draft.GasLimit)
		}
		gasLimit = v.Uint64()
		overridden = true
	}

	if draft.GasPrice != "" {
		v, err := domain.ParseWei(draft.GasPrice)
		if err != nil || v.Sign() == 0 {
			return nil, fmt.Errorf("%w: invalid gas price override %q", ErrEstimateFailed, draft.GasPrice)
		}
		gasPrice = v
		overridden = true
	}

	return domain.NewFeeQuote(gasLimit, gasPrice, overridden), nil
}
