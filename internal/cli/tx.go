package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/walletcore/internal/core/domain"
)

var txCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "Show a transaction's chain state",
	Args:  cobra.ExactArgs(1),
	Run:   runTx,
}

func init() {
	rootCmd.AddCommand(txCmd)
}

func runTx(cmd *cobra.Command, args []string) {
	app := newWallet()
	ctx := context.Background()
	hash := args[0]

	info, err := app.Provider().TransactionByHash(ctx, hash)
	if err != nil {
		slog.Error("Transaction lookup failed", "hash", hash, "error", err)
		os.Exit(1)
	}
	if info == nil {
		fmt.Println("Transaction not known to the chain.")
		return
	}

	fmt.Printf("Hash:   %s\n", info.Hash)
	fmt.Printf("From:   %s\n", info.From)
	fmt.Printf("To:     %s\n", info.To)
	fmt.Printf("Value:  %s\n", domain.WeiToDecimal(info.Value))
	if info.BlockNumber > 0 {
		fmt.Printf("Block:  %d\n", info.BlockNumber)
	} else {
		fmt.Println("Block:  (pending)")
	}

	receipt, err := app.Provider().TransactionReceipt(ctx, hash)
	if err != nil || receipt == nil {
		return
	}
	if receipt.Succeeded() {
		fmt.Printf("Status: confirmed (gas used %d)\n", receipt.GasUsed)
	} else {
		fmt.Printf("Status: failed (gas used %d)\n", receipt.GasUsed)
	}
}
