package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show native and token balances",
	Run:   runBalance,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, args []string) {
	app := newWallet()

	balances, err := app.Balances(context.Background())
	if err != nil {
		slog.Error("Failed to fetch balances", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ASSET\tBALANCE")
	for _, b := range balances {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Symbol, b.Amount)
	}
	_ = w.Flush()
}
