// Package evm implements the chain.Provider interface over EVM JSON-RPC.
package evm

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/vietddude/walletcore/internal/core/domain"
	"github.com/vietddude/walletcore/internal/infra/chain"
)

// balanceOf(address) selector, the only contract call the wallet makes.
const balanceOfSelector = "0x70a08231"

// Caller issues raw JSON-RPC calls. Satisfied by *rpc.Client.
type Caller interface {
	Call(ctx context.Context, method string, params []any) (any, error)
}

type Adapter struct {
	chainID domain.ChainID
	client  Caller
}

func NewAdapter(chainID domain.ChainID, client Caller) *Adapter {
	return &Adapter{chainID: chainID, client: client}
}

func (a *Adapter) ChainID() domain.ChainID {
	return a.chainID
}

func (a *Adapter) EstimateGas(ctx context.Context, tx chain.TxRequest) (uint64, error) {
	result, err := a.client.Call(ctx, "eth_estimateGas", []any{txObject(tx)})
	if err != nil {
		return 0, fmt.Errorf("eth_estimateGas failed: %w", err)
	}
	gas, err := parseHexUint(result)
	if err != nil {
		return 0, fmt.Errorf("invalid gas estimate: %w", err)
	}
	return gas, nil
}

func (a *Adapter) FeeData(ctx context.Context) (*chain.FeeData, error) {
	result, err := a.client.Call(ctx, "eth_gasPrice", nil)
	if err != nil {
		return nil, fmt.Errorf("eth_gasPrice failed: %w", err)
	}
	if result == nil {
		return &chain.FeeData{}, nil
	}
	price, err := parseHexBig(result)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price: %w", err)
	}
	return &chain.FeeData{GasPrice: price}, nil
}

func (a *Adapter) Balance(ctx context.Context, address string) (*big.Int, error) {
	result, err := a.client.Call(ctx, "eth_getBalance", []any{normalize(address), "latest"})
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance failed: %w", err)
	}
	balance, err := parseHexBig(result)
	if err != nil {
		return nil, fmt.Errorf("invalid balance: %w", err)
	}
	return balance, nil
}

func (a *Adapter) SendTransaction(ctx context.Context, tx chain.TxRequest) (string, error) {
	result, err := a.client.Call(ctx, "eth_sendTransaction", []any{txObject(tx)})
	if err != nil {
		return "", fmt.Errorf("eth_sendTransaction failed: %w", err)
	}
	hash, ok := result.(string)
	if !ok || hash == "" {
		return "", fmt.Errorf("invalid transaction hash response: %v", result)
	}
	return hash, nil
}

func (a *Adapter) TransactionByHash(ctx context.Context, hash string) (*chain.TxInfo, error) {
	result, err := a.client.Call(ctx, "eth_getTransactionByHash", []any{hash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionByHash failed: %w", err)
	}
	if result == nil {
		return nil, nil // Unknown to the chain
	}
	raw, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid transaction format")
	}

	value, _ := parseHexBig(raw["value"])
	gasPrice, _ := parseHexBig(raw["gasPrice"])
	blockNumber, _ := parseHexUint(raw["blockNumber"]) // null while pending

	return &chain.TxInfo{
		Hash:        getString(raw["hash"]),
		From:        getString(raw["from"]),
		To:          getString(raw["to"]),
		Value:       value,
		GasPrice:    gasPrice,
		BlockNumber: blockNumber,
	}, nil
}

func (a *Adapter) TransactionReceipt(ctx context.Context, hash string) (*chain.Receipt, error) {
	result, err := a.client.Call(ctx, "eth_getTransactionReceipt", []any{hash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt failed: %w", err)
	}
	if result == nil {
		return nil, nil // Not mined yet
	}
	raw, ok := result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid receipt format")
	}

	status, err := parseHexUint(raw["status"])
	if err != nil {
		return nil, fmt.Errorf("invalid receipt status: %w", err)
	}
	gasUsed, _ := parseHexUint(raw["gasUsed"])
	blockNumber, _ := parseHexUint(raw["blockNumber"])

	return &chain.Receipt{
		Status:      status,
		GasUsed:     gasUsed,
		BlockNumber: blockNumber,
	}, nil
}

func (a *Adapter) TokenBalance(ctx context.Context, token, owner string) (*big.Int, error) {
	if !common.IsHexAddress(token) {
		return nil, fmt.Errorf("invalid token address %q", token)
	}
	if !common.IsHexAddress(owner) {
		return nil, fmt.Errorf("invalid owner address %q", owner)
	}
	call := map[string]any{
		"to":   normalize(token),
		"data": balanceOfSelector + padAddress(owner),
	}
	result, err := a.client.Call(ctx, "eth_call", []any{call, "latest"})
	if err != nil {
		return nil, fmt.Errorf("eth_call balanceOf failed: %w", err)
	}
	balance, err := parseHexBig(result)
	if err != nil {
		return nil, fmt.Errorf("invalid token balance: %w", err)
	}
	return balance, nil
}

// -----------------------------------------------------------------------------
// Encoding helpers
// -----------------------------------------------------------------------------

// txObject builds the JSON-RPC transaction parameter, omitting unset fields
// so the node fills its own defaults.
func txObject(tx chain.TxRequest) map[string]any {
	obj := map[string]any{
		"from": normalize(tx.From),
		"to":   normalize(tx.To),
	}
	if tx.Value != nil && tx.Value.Sign() > 0 {
		obj["value"] = hexutil.EncodeBig(tx.Value)
	}
	if tx.Gas > 0 {
		obj["gas"] = hexutil.EncodeUint64(tx.Gas)
	}
	if tx.GasPrice != nil && tx.GasPrice.Sign() > 0 {
		obj["gasPrice"] = hexutil.EncodeBig(tx.GasPrice)
	}
	if len(tx.Data) > 0 {
		obj["data"] = hexutil.Encode(tx.Data)
	}
	return obj
}

func normalize(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// padAddress left-pads an address to a 32-byte ABI word, without 0x prefix.
// Input longer than a word keeps its low-order 32 bytes.
func padAddress(address string) string {
	hex := strings.ToLower(strings.TrimPrefix(normalize(address), "0x"))
	if len(hex) >= 64 {
		return hex[len(hex)-64:]
	}
	return strings.Repeat("0", 64-len(hex)) + hex
}

func getString(v any) string {
	s, _ := v.(string)
	return s
}

func parseHexBig(v any) (*big.Int, error) {
	s := getString(v)
	if s == "" {
		return nil, fmt.Errorf("empty hex value")
	}
	return hexutil.DecodeBig(normalizeHex(s))
}

func parseHexUint(v any) (uint64, error) {
	s := getString(v)
	if s == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	return hexutil.DecodeUint64(normalizeHex(s))
}

// normalizeHex strips leading zeros hexutil rejects ("0x01" -> "0x1").
func normalizeHex(s string) string {
	if !strings.HasPrefix(s, "0x") {
		return s
	}
	trimmed := strings.TrimLeft(s[2:], "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return "0x" + trimmed
}
