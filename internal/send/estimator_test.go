package send

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/chain"
)

// stubProvider is a scriptable chain.Provider shared by the send tests.
type stubProvider struct {
	gas        uint64
	gasErr     error
	fee        *chain.FeeData
	feeErr     error
	balance    *big.Int
	balanceErr error
	sendHash   string
	sendErr    error
	receipts   map[string]*chain.Receipt

	estimated []chain.TxRequest
	sent      []chain.TxRequest
}

func (p *stubProvider) EstimateGas(_ context.Context, tx chain.TxRequest) (uint64, error) {
	p.estimated = append(p.estimated, tx)
	if p.gasErr != nil {
		return 0, p.gasErr
	}
	return p.gas, nil
}

func (p *stubProvider) FeeData(context.Context) (*chain.FeeData, error) {
	if p.feeErr != nil {
		return nil, p.feeErr
	}
	if p.fee == nil {
		return &chain.FeeData{}, nil
	}
	return p.fee, nil
}

func (p *stubProvider) Balance(context.Context, string) (*big.Int, error) {
	if p.balanceErr != nil {
		return nil, p.balanceErr
	}
	if p.balance == nil {
		return big.NewInt(0), nil
	}
	return p.balance, nil
}

func (p *stubProvider) SendTransaction(_ context.Context, tx chain.TxRequest) (string, error) {
	p.sent = append(p.sent, tx)
	if p.sendErr != nil {
		return "", p.sendErr
	}
	return p.sendHash, nil
}

func (p *stubProvider) TransactionByHash(context.Context, string) (*chain.TxInfo, error) {
	return nil, nil
}

func (p *stubProvider) TransactionReceipt(_ context.Context, hash string) (*chain.Receipt, error) {
	return p.receipts[hash], nil
}

func (p *stubProvider) TokenBalance(context.Context, string, string) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (p *stubProvider) ChainID() domain.ChainID {
	return domain.ChainIDEthereum
}

const recipient = "0x0000000000000000000000000000000000000001"

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
}

func TestQuote_ComputesCost(t *testing.T) {
	provider := &stubProvider{gas: 21000, fee: &chain.FeeData{GasPrice: gwei(30)}}
	estimator := NewEstimator(provider, nil)

	quote, err := estimator.Quote(context.Background(), recipient, domain.TransactionDraft{
		Recipient: recipient,
		Amount:    "0.5",
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if quote.GasLimit != 21000 {
		t.Errorf("GasLimit = %d, want 21000", quote.GasLimit)
	}
	want := new(big.Int).Mul(big.NewInt(21000), gwei(30))
	if quote.Cost.Cmp(want) != 0 {
		t.Errorf("Cost = %s, want %s", quote.Cost, want)
	}
	// 21000 * 30 gwei = 0.00063 native
	if quote.CostNative.String() != "0.00063" {
		t.Errorf("CostNative = %s, want 0.00063", quote.CostNative)
	}
	if quote.Overridden {
		t.Error("Quote marked overridden without overrides")
	}
}

func TestQuote_DefaultGasPriceFallback(t *testing.T) {
	// Provider reports no fee data at all
	provider := &stubProvider{gas: 21000}
	estimator := NewEstimator(provider, nil)

	quote, err := estimator.Quote(context.Background(), recipient, domain.TransactionDraft{
		Recipient: recipient,
		Amount:    "1",
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if quote.GasPrice.Cmp(DefaultGasPrice) != 0 {
		t.Errorf("GasPrice = %s, want default %s", quote.GasPrice, DefaultGasPrice)
	}
	want := new(big.Int).Mul(big.NewInt(21000), DefaultGasPrice)
	if quote.Cost.Cmp(want) != 0 {
		t.Errorf("Cost = %s, want %s", quote.Cost, want)
	}
}

func TestQuote_OverridesRecomputeCost(t *testing.T) {
	provider := &stubProvider{gas: 21000, fee: &chain.FeeData{GasPrice: gwei(30)}}
	estimator := NewEstimator(provider, nil)

	quote, err := estimator.Quote(context.Background(), recipient, domain.TransactionDraft{
		Recipient: recipient,
		Amount:    "0.5",
		GasLimit:  "50000",
		GasPrice:  gwei(10).String(),
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	if !quote.Overridden {
		t.Error("Quote not marked overridden")
	}
	if quote.GasLimit != 50000 {
		t.Errorf("GasLimit = %d, want override 50000", quote.GasLimit)
	}
	want := new(big.Int).Mul(big.NewInt(50000), gwei(10))
	if quote.Cost.Cmp(want) != 0 {
		t.Errorf("Cost = %s, want recomputed %s", quote.Cost, want)
	}
}

func TestQuote_PartialOverride(t *testing.T) {
	provider := &stubProvider{gas: 21000, fee: &chain.FeeData{GasPrice: gwei(30)}}
	estimator := NewEstimator(provider, nil)

	quote, err := estimator.Quote(context.Background(), recipient, domain.TransactionDraft{
		Recipient: recipient,
		Amount:    "0.5",
		GasPrice:  gwei(12).String(),
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}

	// Estimated limit kept, overridden price applied
	if quote.GasLimit != 21000 {
		t.Errorf("GasLimit = %d, want estimated 21000", quote.GasLimit)
	}
	if quote.GasPrice.Cmp(gwei(12)) != 0 {
		t.Errorf("GasPrice = %s, want override %s", quote.GasPrice, gwei(12))
	}
}

func TestQuote_EstimationFailure(t *testing.T) {
	provider := &stubProvider{gasErr: errors.New("execution reverted")}
	estimator := NewEstimator(provider, nil)

	_, err := estimator.Quote(context.Background(), recipient, domain.TransactionDraft{
		Recipient: recipient,
		Amount:    "0.5",
	})
	if !errors.Is(err, ErrEstimateFailed) {
		t.Fatalf("Expected ErrEstimateFailed, got %v", err)
	}
}

func TestQuote_RejectsInvalidInputs(t *testing.T) {
	provider := &stubProvider{gas: 21000, fee: &chain.FeeData{GasPrice: gwei(30)}}
	estimator := NewEstimator(provider, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		draft domain.TransactionDraft
	}{
		{"bad recipient", domain.TransactionDraft{Recipient: "not-an-address", Amount: "1"}},
		{"bad amount", domain.TransactionDraft{Recipient: recipient, Amount: "abc"}},
		{"negative amount", domain.TransactionDraft{Recipient: recipient, Amount: "-1"}},
		{"bad gas limit override", domain.TransactionDraft{Recipient: recipient, Amount: "1", GasLimit: "zero"}},
		{"zero gas price override", domain.TransactionDraft{Recipient: recipient, Amount: "1", GasPrice: "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := estimator.Quote(ctx, recipient, tc.draft); !errors.Is(err, ErrEstimateFailed) {
				t.Errorf("Expected ErrEstimateFailed, got %v", err)
			}
		})
	}
}
