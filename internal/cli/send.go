package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietddude/walletcore/internal/addressbook"
	"github.com/vietddude/walletcore/internal/core/domain"
)

var (
	sendTo       string
	sendAmount   string
	sendGasLimit string
	sendGasPrice string
	sendYes      bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a transaction",
	Long:  `Estimates the fee, validates the draft against the live balance, asks for confirmation, and submits.`,
	Run:   runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address or address-book name (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "amount in native units (required)")
	sendCmd.Flags().StringVar(&sendGasLimit, "gas-limit", "", "custom gas limit")
	sendCmd.Flags().StringVar(&sendGasPrice, "gas-price", "", "custom gas price in gwei")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "submit without the interactive prompt")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("amount")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) {
	app := newWallet()
	ctx := context.Background()

	recipient := resolveRecipient(ctx, app.Book(), sendTo)

	flow := app.NewSendFlow()
	flow.SetRecipient(recipient)
	flow.SetAmount(sendAmount)
	if sendGasLimit != "" {
		flow.SetGasLimit(sendGasLimit)
	}
	if sendGasPrice != "" {
		gwei, err := domain.ParseDecimalAmount(sendGasPrice)
		if err != nil {
			slog.Error("Invalid gas price", "value", sendGasPrice)
			os.Exit(1)
		}
		wei, err := domain.GweiToWei(gwei)
		if err != nil {
			slog.Error("Invalid gas price", "value", sendGasPrice, "error", err)
			os.Exit(1)
		}
		flow.SetGasPrice(wei.String())
	}

	quote, err := flow.Estimate(ctx)
	if err != nil {
		slog.Error("Fee estimation failed", "error", err)
		os.Exit(1)
	}

	snap, err := flow.RequestConfirmation(ctx)
	if err != nil {
		slog.Error("Draft rejected", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Send %s to %s\n", sendAmount, domain.ShortAddress(recipient))
	fmt.Printf("  Fee:   %s (gas %d @ %s wei)\n", quote.CostNative, quote.GasLimit, quote.GasPrice)
	fmt.Printf("  Total: %s\n", snap.Total)

	if !sendYes && !promptConfirm() {
		_ = flow.Cancel()
		fmt.Println("Cancelled.")
		return
	}

	record, err := flow.Confirm(ctx)
	if err != nil {
		slog.Error("Submission failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Submitted: %s\n", record.Hash)
}

// resolveRecipient accepts either a raw address or an address-book name.
// A book hit records the use so the entry sorts to the top next time.
func resolveRecipient(ctx context.Context, book *addressbook.Book, nameOrAddress string) string {
	if domain.ValidAddress(nameOrAddress) {
		if entry, err := book.Lookup(ctx, nameOrAddress); err == nil {
			_ = book.Touch(ctx, entry.ID)
		}
		return nameOrAddress
	}

	entry, err := book.Lookup(ctx, nameOrAddress)
	if err != nil {
		slog.Error("Recipient is neither an address nor a saved name", "recipient", nameOrAddress)
		os.Exit(1)
	}
	_ = book.Touch(ctx, entry.ID)
	return entry.Address
}

func promptConfirm() bool {
	fmt.Print("Confirm? [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
