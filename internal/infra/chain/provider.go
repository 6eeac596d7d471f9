// Package chain defines the narrow capability interface the wallet core needs
// from a signer/provider. Any concrete node or wallet backend satisfies it by
// implementing exactly these calls; the core never depends on a wider surface.
package chain

import (
	"context"
	"math/big"

	"github.com/vietddude/walletcore/internal/core/domain"
)

// TxRequest describes a transaction for simulation or submission.
// Value, GasPrice are in wei; Gas is a unit count. Zero-value fields are
// omitted from the underlying call.
type TxRequest struct {
	From     string
	To       string
	Value    *big.Int
	Gas      uint64
	GasPrice *big.Int
	Data     []byte
}

// FeeData reports current fee conditions. GasPrice is nil when the node
// reports none; callers decide the fallback.
type FeeData struct {
	GasPrice *big.Int
}

// TxInfo is the chain's view of a submitted transaction.
type TxInfo struct {
	Hash        string
	From        string
	To          string
	Value       *big.Int
	GasPrice    *big.Int
	BlockNumber uint64
}

// Receipt is the execution result of a mined transaction.
type Receipt struct {
	Status      uint64
	GasUsed     uint64
	BlockNumber uint64
}

// Succeeded reports whether the transaction executed successfully.
func (r *Receipt) Succeeded() bool {
	return r.Status == 1
}

// Provider is the external signer/provider collaborator. Lookup calls return
// (nil, nil) when the chain does not know the transaction yet.
type Provider interface {
	// EstimateGas simulates the transaction and returns its gas cost
	EstimateGas(ctx context.Context, tx TxRequest) (uint64, error)

	// FeeData returns current fee-per-gas conditions
	FeeData(ctx context.Context) (*FeeData, error)

	// Balance returns the native-coin balance of an address in wei
	Balance(ctx context.Context, address string) (*big.Int, error)

	// SendTransaction dispatches the transaction through the signer and
	// returns the chain-assigned hash
	SendTransaction(ctx context.Context, tx TxRequest) (string, error)

	// TransactionByHash looks up a transaction
	TransactionByHash(ctx context.Context, hash string) (*TxInfo, error)

	// TransactionReceipt looks up the execution receipt
	TransactionReceipt(ctx context.Context, hash string) (*Receipt, error)

	// TokenBalance returns an ERC-20 balance in the token's smallest unit
	TokenBalance(ctx context.Context, token, owner string) (*big.Int, error)

	// ChainID returns the chain identifier
	ChainID() domain.ChainID
}
