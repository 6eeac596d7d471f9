package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/walletcore/internal/core/domain"
)

var (
	historyAddress string
	historyRefresh bool
	historyClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the transaction history",
	Run:   runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyAddress, "address", "", "only transactions involving this address")
	historyCmd.Flags().BoolVar(&historyRefresh, "refresh", false, "reconcile pending transactions before listing")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "clear the history instead of listing it")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	app := newWallet()
	ctx := context.Background()

	if historyClear {
		if err := app.History().Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to clear history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")
		return
	}

	if historyRefresh {
		updated := app.Reconcile(ctx)
		fmt.Printf("Reconciled %d pending transaction(s)\n", updated)
	}

	var records []*domain.TransactionRecord
	if historyAddress != "" {
		records = app.History().QueryByAddress(ctx, historyAddress)
	} else {
		records = app.History().All(ctx)
	}

	if len(records) == 0 {
		fmt.Println("No transactions.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "HASH\tDIRECTION\tAMOUNT\tSTATUS\tBLOCK\tTIME")
	for _, r := range records {
		block := "-"
		if r.BlockNumber > 0 {
			block = fmt.Sprintf("%d", r.BlockNumber)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			domain.ShortAddress(r.Hash),
			r.Direction,
			r.Amount,
			r.Status,
			block,
			time.Unix(r.Timestamp, 0).Format(time.RFC3339),
		)
	}
	_ = w.Flush()
}
